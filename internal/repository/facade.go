package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pureiot/support-api/internal/domain"
)

// TicketSource tags where a resolved ticket came from.
type TicketSource string

const (
	SourceExternal TicketSource = "external"
	SourceLocal    TicketSource = "local"
)

// ResolvedTicket is a ticket view plus the store that produced it.
type ResolvedTicket struct {
	domain.Ticket
	Source TicketSource `json:"source"`
}

// TicketFacade resolves tickets from the hosted store first and falls back
// to the local document. The external ticket wins wholesale when present;
// the two sources are never merged.
type TicketFacade struct {
	external ExternalTicketRepository
	local    LocalTicketRepository
	cache    *redis.Client
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewTicketFacade constructs the facade. cache may be nil.
func NewTicketFacade(external ExternalTicketRepository, local LocalTicketRepository, cache *redis.Client, cacheTTL time.Duration, logger *zap.Logger) *TicketFacade {
	return &TicketFacade{
		external: external,
		local:    local,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// Resolve returns the ticket for the given id, or a not-found error when
// neither store holds it.
func (f *TicketFacade) Resolve(ctx context.Context, ticketID string) (*ResolvedTicket, error) {
	if cached := f.cacheGet(ctx, ticketID); cached != nil {
		return cached, nil
	}

	resolved, err := f.resolveUncached(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	f.cacheSet(ctx, resolved)
	return resolved, nil
}

func (f *TicketFacade) resolveUncached(ctx context.Context, ticketID string) (*ResolvedTicket, error) {
	ticket, err := f.external.FindByNumber(ctx, ticketID)
	if err == nil {
		return &ResolvedTicket{Ticket: *ticket, Source: SourceExternal}, nil
	}
	if !errors.Is(err, ErrNotConfigured) && !errors.Is(err, pgx.ErrNoRows) {
		f.logger.Warn("external ticket lookup failed; falling back to local store",
			zap.String("ticket_number", ticketID), zap.Error(err))
	}

	local, err := f.local.FindByNumber(ticketID)
	if err != nil {
		return nil, err
	}
	return &ResolvedTicket{Ticket: *local, Source: SourceLocal}, nil
}

// UpdateStatus applies the new status (and optional note) against the store
// the ticket was resolved from, and always upserts the local document for
// redundancy. Returns the updated view.
func (f *TicketFacade) UpdateStatus(ctx context.Context, ticketID string, status domain.TicketStatus, note string) (*ResolvedTicket, error) {
	resolved, err := f.resolveUncached(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	resolved.Status = status
	resolved.UpdatedAt = now
	if note != "" {
		comment := domain.Comment{Text: note, Author: "Support Staff", CreatedAt: now}
		resolved.Comments = append(resolved.Comments, comment)
	}

	if resolved.Source == SourceExternal {
		if err := f.external.UpdateStatus(ctx, ticketID, status); err != nil {
			return nil, err
		}
		if note != "" {
			if err := f.external.AddComment(ctx, ticketID, note, "Support Staff"); err != nil {
				return nil, err
			}
		}
	}

	if err := f.local.Upsert(resolved.Ticket); err != nil {
		return nil, err
	}

	f.cacheInvalidate(ctx, ticketID)
	return resolved, nil
}

func (f *TicketFacade) cacheKey(ticketID string) string {
	return "ticket:" + ticketID
}

func (f *TicketFacade) cacheGet(ctx context.Context, ticketID string) *ResolvedTicket {
	if f.cache == nil {
		return nil
	}
	data, err := f.cache.Get(ctx, f.cacheKey(ticketID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			f.logger.Debug("ticket cache read failed", zap.Error(err))
		}
		return nil
	}
	var resolved ResolvedTicket
	if err := json.Unmarshal(data, &resolved); err != nil {
		return nil
	}
	return &resolved
}

func (f *TicketFacade) cacheSet(ctx context.Context, resolved *ResolvedTicket) {
	if f.cache == nil {
		return
	}
	data, err := json.Marshal(resolved)
	if err != nil {
		return
	}
	if err := f.cache.Set(ctx, f.cacheKey(resolved.TicketNumber), data, f.cacheTTL).Err(); err != nil {
		f.logger.Debug("ticket cache write failed", zap.Error(err))
	}
}

func (f *TicketFacade) cacheInvalidate(ctx context.Context, ticketID string) {
	if f.cache == nil {
		return
	}
	if err := f.cache.Del(ctx, f.cacheKey(ticketID)).Err(); err != nil {
		f.logger.Debug("ticket cache invalidation failed", zap.Error(err))
	}
}
