package services_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelbook/constants"
	"hotelbook/dto"
	apperr "hotelbook/errors"
	"hotelbook/services"
)

func TestSupportTickets(t *testing.T) {
	f := newFixture(t)
	support := services.NewSupportService(services.SupportServiceOptions{Tickets: f.store.Tickets()})

	first, err := support.Create(f.ctx, f.customer, dto.TicketRequest{Subject: " Không đặt được ", Message: "Lỗi 409"})
	require.NoError(t, err)
	assert.Equal(t, constants.TicketStatusOpen, first.Status)
	assert.Equal(t, "Không đặt được", first.Subject)

	second, err := support.Create(f.ctx, f.other, dto.TicketRequest{Subject: "Hoá đơn", Message: "Cần xuất hoá đơn"})
	require.NoError(t, err)

	_, err = support.Create(f.ctx, f.customer, dto.TicketRequest{Subject: "x", Message: "  "})
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	_, err = support.Create(f.ctx, services.Identity{}, dto.TicketRequest{Subject: "x", Message: "y"})
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))

	mine, err := support.ListMine(f.ctx, f.customer)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, first.ID, mine[0].ID)

	_, err = support.ListAll(f.ctx, f.customer)
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))

	all, err := support.ListAll(f.ctx, f.admin)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)
	require.NotNil(t, all[0].User)
	assert.Equal(t, f.other.Email, all[0].User.Email)
}

func TestSupportUpdateStatus(t *testing.T) {
	f := newFixture(t)
	support := services.NewSupportService(services.SupportServiceOptions{Tickets: f.store.Tickets()})
	ticket, err := support.Create(f.ctx, f.customer, dto.TicketRequest{Subject: "a", Message: "b"})
	require.NoError(t, err)

	updated, err := support.UpdateStatus(f.ctx, f.admin, ticket.ID, constants.TicketStatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, constants.TicketStatusInProgress, updated.Status)

	_, err = support.UpdateStatus(f.ctx, f.admin, ticket.ID, "done")
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	_, err = support.UpdateStatus(f.ctx, f.admin, 9999, constants.TicketStatusClosed)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	_, err = support.UpdateStatus(f.ctx, f.manager, ticket.ID, constants.TicketStatusClosed)
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))
}
