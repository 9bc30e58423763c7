package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecoveryAPI struct {
	sendErr   error
	verifyErr error
	resetErr  error
	sent      []string
	resets    map[string]string
}

func (f *fakeRecoveryAPI) SendOTP(ctx context.Context, email string) error {
	f.sent = append(f.sent, email)
	return f.sendErr
}

func (f *fakeRecoveryAPI) VerifyOTP(ctx context.Context, email, otp string) error {
	if otp != "123456" {
		return errors.New("bad otp")
	}
	return f.verifyErr
}

func (f *fakeRecoveryAPI) ResetPassword(ctx context.Context, email, password string) error {
	if f.resetErr != nil {
		return f.resetErr
	}
	if f.resets == nil {
		f.resets = make(map[string]string)
	}
	f.resets[email] = password
	return nil
}

func TestOTPService_FullRecovery(t *testing.T) {
	ctx := context.Background()
	api := &fakeRecoveryAPI{}
	svc := NewOTPService(api, 30, time.Hour)
	defer svc.Close()

	_, err := svc.SendOTP(ctx, "p1", "  ")
	assert.ErrorIs(t, err, ErrEmailRequired)

	state, err := svc.SendOTP(ctx, "p1", "asha@example.com")
	require.NoError(t, err)
	assert.Equal(t, RecoveryOTP, state.Step)
	assert.Equal(t, 30, state.ResendIn)

	_, err = svc.ResendOTP(ctx, "p1")
	assert.ErrorIs(t, err, ErrResendTooSoon)

	_, err = svc.VerifyOTP(ctx, "p1", "000000")
	assert.ErrorIs(t, err, ErrInvalidOTP)
	assert.Equal(t, RecoveryOTP, svc.State("p1").Step)

	state, err = svc.VerifyOTP(ctx, "p1", "123456")
	require.NoError(t, err)
	assert.Equal(t, RecoveryReset, state.Step)
	assert.Equal(t, 0, state.ResendIn)

	_, err = svc.ResetPassword(ctx, "p1", "new-pass", "other")
	assert.ErrorIs(t, err, ErrPasswordMismatch)
	_, err = svc.ResetPassword(ctx, "p1", "", "")
	assert.ErrorIs(t, err, ErrPasswordMismatch)

	state, err = svc.ResetPassword(ctx, "p1", "new-pass", "new-pass")
	require.NoError(t, err)
	assert.Equal(t, RecoveryDone, state.Step)
	assert.Equal(t, "new-pass", api.resets["asha@example.com"])
}

func TestOTPService_UnknownEmail(t *testing.T) {
	svc := NewOTPService(&fakeRecoveryAPI{sendErr: errors.New("404")}, 30, time.Hour)
	defer svc.Close()

	state, err := svc.SendOTP(context.Background(), "p1", "nobody@example.com")

	assert.ErrorIs(t, err, ErrEmailNotRegistered)
	assert.Equal(t, RecoveryEmail, state.Step)
}

func TestOTPService_ResendAfterCountdown(t *testing.T) {
	ctx := context.Background()
	api := &fakeRecoveryAPI{}
	svc := NewOTPService(api, 2, 5*time.Millisecond)
	defer svc.Close()

	_, err := svc.SendOTP(ctx, "p1", "asha@example.com")
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return svc.State("p1").ResendIn == 0
	}, time.Second, 5*time.Millisecond)

	_, err = svc.ResendOTP(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"asha@example.com", "asha@example.com"}, api.sent)
}

func TestOTPService_StepGuards(t *testing.T) {
	ctx := context.Background()
	svc := NewOTPService(&fakeRecoveryAPI{}, 30, time.Hour)
	defer svc.Close()

	_, err := svc.VerifyOTP(ctx, "p1", "123456")
	assert.ErrorIs(t, err, ErrRecoveryStep)
	_, err = svc.ResetPassword(ctx, "p1", "a", "a")
	assert.ErrorIs(t, err, ErrRecoveryStep)
	_, err = svc.ResendOTP(ctx, "p1")
	assert.ErrorIs(t, err, ErrRecoveryStep)
}

func TestOTPService_AbandonStopsCountdown(t *testing.T) {
	ctx := context.Background()
	svc := NewOTPService(&fakeRecoveryAPI{}, 30, time.Hour)

	_, err := svc.SendOTP(ctx, "p1", "asha@example.com")
	require.NoError(t, err)
	countdown := svc.flow("p1").countdown
	require.NotNil(t, countdown)

	svc.Abandon("p1")

	select {
	case <-countdown.Done():
	case <-time.After(time.Second):
		t.Fatal("countdown still running after abandon")
	}
	assert.Equal(t, RecoveryEmail, svc.State("p1").Step)
}

func TestCountdown(t *testing.T) {
	c := StartCountdown(3, time.Millisecond)
	select {
	case <-c.Done():
	case <-time.After(time.Second):
		t.Fatal("countdown did not finish")
	}
	assert.Equal(t, 0, c.Remaining())
	c.Stop()
	c.Stop()

	zero := StartCountdown(0, time.Millisecond)
	assert.Equal(t, 0, zero.Remaining())
	zero.Stop()
}
