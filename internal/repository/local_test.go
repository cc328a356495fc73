package repository

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pureiot/support-api/internal/domain"
	"github.com/pureiot/support-api/internal/persistence"
	apperrors "github.com/pureiot/support-api/pkg/util/errorutil"
)

func newLocalRepo(t *testing.T) LocalTicketRepository {
	t.Helper()
	store := persistence.NewTicketStore(filepath.Join(t.TempDir(), "tickets.json"), zap.NewNop())
	return NewLocalTicketRepository(store)
}

func newTicket(number, email string) domain.Ticket {
	now := time.Now().UTC()
	return domain.Ticket{
		ID:           number,
		TicketNumber: number,
		UserName:     "Jane",
		UserEmail:    email,
		CompanyName:  domain.FieldNotProvided,
		Issue:        "printer down",
		Priority:     domain.TicketPriorityMedium,
		Status:       domain.TicketStatusOpen,
		Comments:     []domain.Comment{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestLocalRepoFindByNumber(t *testing.T) {
	repo := newLocalRepo(t)
	require.NoError(t, repo.Append(newTicket("T-100", "jane@x.com")))

	ticket, err := repo.FindByNumber("T-100")
	require.NoError(t, err)
	assert.Equal(t, "jane@x.com", ticket.UserEmail)

	_, err = repo.FindByNumber("T-999")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestLocalRepoListForUser(t *testing.T) {
	repo := newLocalRepo(t)
	require.NoError(t, repo.Append(newTicket("T-100", "jane@x.com")))
	require.NoError(t, repo.Append(newTicket("T-200", "bob@x.com")))

	byEmail, err := repo.ListForUser("jane@x.com")
	require.NoError(t, err)
	require.Len(t, byEmail, 1)
	assert.Equal(t, "T-100", byEmail[0].TicketNumber)

	// Partial ticket-number lookup is allowed.
	bySubstring, err := repo.ListForUser("200")
	require.NoError(t, err)
	require.Len(t, bySubstring, 1)
	assert.Equal(t, "T-200", bySubstring[0].TicketNumber)

	none, err := repo.ListForUser("nobody@x.com")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestLocalRepoUpsert(t *testing.T) {
	repo := newLocalRepo(t)
	ticket := newTicket("T-100", "jane@x.com")
	require.NoError(t, repo.Append(ticket))

	ticket.Status = domain.TicketStatusResolved
	require.NoError(t, repo.Upsert(ticket))

	got, err := repo.FindByNumber("T-100")
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusResolved, got.Status)

	all, err := repo.ListForUser("jane@x.com")
	require.NoError(t, err)
	assert.Len(t, all, 1, "upsert must replace, not duplicate")

	fresh := newTicket("T-300", "jane@x.com")
	require.NoError(t, repo.Upsert(fresh))
	all, err = repo.ListForUser("jane@x.com")
	require.NoError(t, err)
	assert.Len(t, all, 2, "upsert appends unknown ticket numbers")
}
