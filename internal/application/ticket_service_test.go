package application

import (
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/domilony/leadgen/internal/domain/ticket"
	"github.com/domilony/leadgen/internal/repository"
	"github.com/domilony/leadgen/internal/repository/mock"
)

// --------------------- Setup ---------------------
func setupTicketServiceMocks(t *testing.T) (*TicketService, *mock.MockTicketRepo) {
	ctrl := gomock.NewController(t)
	t.Cleanup(func() { ctrl.Finish() })

	mockTicket := mock.NewMockTicketRepo(ctrl)
	repos := &repository.Repos{
		Ticket: mockTicket,
	}
	return NewTicketService(repos), mockTicket
}

func ptrString(s string) *string { return &s }

// --------------------- Create ---------------------
func TestCreateTicket_Success(t *testing.T) {
	svc, mockTicket := setupTicketServiceMocks(t)

	input := ticket.CreateTicketInput{
		Name:        "Ann Lee",
		Email:       "a@x.com",
		Phone:       "+1 555-2222",
		Message:     ptrString("hello"),
		ProjectType: ptrString("house"),
	}

	mockTicket.EXPECT().Create(gomock.Any()).DoAndReturn(func(tk *ticket.Ticket) error {
		tk.ID = 7
		return nil
	})

	created, err := svc.Create(input, SubmissionMeta{RemoteAddr: "10.0.0.1", UserAgent: "curl"})
	assert.NoError(t, err)
	assert.Equal(t, uint(7), created.ID)
	assert.Equal(t, ticket.StatusNew, created.Status)
	assert.Equal(t, "Ann Lee", created.Name)
	assert.Nil(t, created.UpdatedAt)
	assert.NotEmpty(t, created.Meta)
}

func TestCreateTicket_RepoError(t *testing.T) {
	svc, mockTicket := setupTicketServiceMocks(t)

	mockTicket.EXPECT().Create(gomock.Any()).Return(errors.New("db down"))

	_, err := svc.Create(ticket.CreateTicketInput{
		Name:  "Ann Lee",
		Email: "a@x.com",
		Phone: "555",
	}, SubmissionMeta{})
	assert.Error(t, err)
}

// --------------------- Get ---------------------
func TestGetTicket_NotFound(t *testing.T) {
	svc, mockTicket := setupTicketServiceMocks(t)

	mockTicket.EXPECT().GetByID(uint(99)).Return(ticket.Ticket{}, gorm.ErrRecordNotFound)

	_, err := svc.Get(99)
	assert.ErrorIs(t, err, ErrTicketNotFound)
}

func TestGetTicket_Success(t *testing.T) {
	svc, mockTicket := setupTicketServiceMocks(t)

	mockTicket.EXPECT().GetByID(uint(3)).Return(ticket.Ticket{ID: 3, Name: "Bob"}, nil)

	got, err := svc.Get(3)
	assert.NoError(t, err)
	assert.Equal(t, "Bob", got.Name)
}

// --------------------- UpdateStatus ---------------------
func TestUpdateStatus_Success(t *testing.T) {
	svc, mockTicket := setupTicketServiceMocks(t)

	created := time.Now().Add(-time.Hour)
	existing := ticket.Ticket{ID: 1, Status: ticket.StatusNew, CreatedAt: created}

	mockTicket.EXPECT().GetByID(uint(1)).Return(existing, nil)
	mockTicket.EXPECT().Save(gomock.Any()).Return(nil)

	updated, err := svc.UpdateStatus(1, ticket.StatusInProgress)
	assert.NoError(t, err)
	assert.Equal(t, ticket.StatusInProgress, updated.Status)
	assert.NotNil(t, updated.UpdatedAt)
	assert.True(t, updated.UpdatedAt.After(created))
	assert.Equal(t, created, updated.CreatedAt)
}

func TestUpdateStatus_NotFound(t *testing.T) {
	svc, mockTicket := setupTicketServiceMocks(t)

	mockTicket.EXPECT().GetByID(uint(42)).Return(ticket.Ticket{}, gorm.ErrRecordNotFound)

	_, err := svc.UpdateStatus(42, ticket.StatusCancelled)
	assert.ErrorIs(t, err, ErrTicketNotFound)
}

// --------------------- Delete ---------------------
func TestDeleteTicket_ReportsExistence(t *testing.T) {
	svc, mockTicket := setupTicketServiceMocks(t)

	gomock.InOrder(
		mockTicket.EXPECT().Delete(uint(5)).Return(true, nil),
		mockTicket.EXPECT().Delete(uint(5)).Return(false, nil),
	)

	existed, err := svc.Delete(5)
	assert.NoError(t, err)
	assert.True(t, existed)

	existed, err = svc.Delete(5)
	assert.NoError(t, err)
	assert.False(t, existed)
}

// --------------------- Stats ---------------------
func TestStats_Aggregates(t *testing.T) {
	svc, mockTicket := setupTicketServiceMocks(t)

	mockTicket.EXPECT().CountByStatus(ticket.StatusNew).Return(int64(3), nil)
	mockTicket.EXPECT().CountByStatus(ticket.StatusInProgress).Return(int64(2), nil)
	mockTicket.EXPECT().CountByStatus(ticket.StatusCancelled).Return(int64(0), nil)
	mockTicket.EXPECT().CountByStatus(ticket.StatusCompleted).Return(int64(1), nil)
	mockTicket.EXPECT().List(ticket.ListQuery{Limit: 5}).Return([]ticket.Ticket{{ID: 9}}, nil)

	stats, err := svc.Stats()
	assert.NoError(t, err)
	assert.Equal(t, int64(6), stats.Total)
	assert.Equal(t, int64(3), stats.ByStatus[ticket.StatusNew])
	assert.Len(t, stats.Recent, 1)
}
