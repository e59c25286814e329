package service

import (
	"context"
	"testing"

	"toutouchic-api/core/errors"
	"toutouchic-api/modules/appointment/entity"
	"toutouchic-api/modules/contact/dto"
	notifdto "toutouchic-api/modules/notification/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotifier struct {
	fail    bool
	relayed []*notifdto.ContactMessage
}

func (f *fakeNotifier) SendBookingConfirmation(ctx context.Context, _ *entity.Appointment) *errors.AppError {
	return nil
}

func (f *fakeNotifier) SendOwnerBookingNotice(ctx context.Context, _ *entity.Appointment) *errors.AppError {
	return nil
}

func (f *fakeNotifier) SendContactMessage(ctx context.Context, message *notifdto.ContactMessage) *errors.AppError {
	if f.fail {
		return errors.NewAppError(errors.ErrExternalService, "Erreur lors de l'envoi du message. Veuillez réessayer.", nil)
	}
	f.relayed = append(f.relayed, message)
	return nil
}

func validContactRequest() *dto.ContactRequest {
	return &dto.ContactRequest{
		Name:    "Paul Martin",
		Email:   "paul@example.com",
		Phone:   "0698765432",
		Dog:     "Border collie",
		Message: "Prenez-vous les chiots de moins de 6 mois ?",
	}
}

func TestContactService_Relay(t *testing.T) {
	t.Run("relays a valid message and returns a reference", func(t *testing.T) {
		notifier := &fakeNotifier{}
		svc := NewContactService(notifier)

		resp, appErr := svc.Relay(context.Background(), validContactRequest())
		require.Nil(t, appErr)
		require.NotEmpty(t, resp.Reference)

		require.Len(t, notifier.relayed, 1)
		assert.Equal(t, "paul@example.com", notifier.relayed[0].Email)
		assert.Equal(t, resp.Reference, notifier.relayed[0].Reference)
	})

	t.Run("rejects missing required fields", func(t *testing.T) {
		svc := NewContactService(&fakeNotifier{})

		req := validContactRequest()
		req.Message = "   "
		_, appErr := svc.Relay(context.Background(), req)
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
	})

	t.Run("rejects a malformed email", func(t *testing.T) {
		svc := NewContactService(&fakeNotifier{})

		req := validContactRequest()
		req.Email = "paul@"
		_, appErr := svc.Relay(context.Background(), req)
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
	})

	t.Run("delivery failure fails the request", func(t *testing.T) {
		svc := NewContactService(&fakeNotifier{fail: true})

		_, appErr := svc.Relay(context.Background(), validContactRequest())
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrExternalService, appErr.Code)
	})
}
