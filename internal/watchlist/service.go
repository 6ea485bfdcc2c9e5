package watchlist

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rmoreira/steamwatch-bot/internal/steam"
	"github.com/rmoreira/steamwatch-bot/pkg/db/models"
	pkgerrors "github.com/rmoreira/steamwatch-bot/pkg/errors"
	"github.com/rmoreira/steamwatch-bot/pkg/logger"
	"github.com/rmoreira/steamwatch-bot/pkg/metrics"
)

var oneHundred = decimal.NewFromInt(100)

// ServiceParams groups dependencies for the watchlist service.
type ServiceParams struct {
	Repo    Repository
	Catalog steam.Catalog
	Logger  *logger.Logger
	Metrics *metrics.CommandMetrics
	Now     func() time.Time
}

// Service interprets chat commands against the user's watchlist and returns
// the outbound messages to deliver, in order. An empty slice means the input
// was not a recognized command and gets no response at all.
type Service interface {
	HandleMessage(ctx context.Context, userID, content string) []string
}

type service struct {
	repo    Repository
	catalog steam.Catalog
	logger  *logger.Logger
	metrics *metrics.CommandMetrics
	now     func() time.Time
}

// NewService wires the command processor dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "watchlist repository is required")
	}
	if params.Catalog == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog client is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:    params.Repo,
		catalog: params.Catalog,
		logger:  params.Logger,
		metrics: params.Metrics,
		now:     now,
	}, nil
}

// HandleMessage parses the verb, dispatches, and times the handling.
// Unrecognized verbs are dropped silently on purpose: the bot shares its
// channels with humans and other bots and must not answer noise.
func (s *service) HandleMessage(ctx context.Context, userID, content string) []string {
	verb, arg := splitCommand(content)
	if verb == "" {
		return nil
	}

	started := s.now()
	var replies []string

	switch verb {
	case "start":
		replies = []string{welcomeMessage}
	case "help":
		replies = []string{helpMessage}
	case "add":
		replies = s.handleAdd(ctx, userID, arg)
	case "remove":
		replies = s.handleRemove(ctx, userID, arg)
	case "check":
		replies = s.handleCheck(ctx, userID)
	case "list":
		replies = s.handleList(ctx, userID)
	default:
		return nil
	}

	s.metrics.IncHandled(verb)
	s.metrics.ObserveDuration(verb, s.now().Sub(started))
	return replies
}

// splitCommand extracts the slash-verb and everything after the first space.
// Returns an empty verb for anything that is not a slash command.
func splitCommand(content string) (verb, arg string) {
	if !strings.HasPrefix(content, "/") {
		return "", ""
	}
	head, tail, _ := strings.Cut(content[1:], " ")
	return strings.ToLower(strings.TrimSpace(head)), strings.TrimSpace(tail)
}

func (s *service) handleAdd(ctx context.Context, userID, name string) []string {
	if name == "" {
		return []string{addUsageMessage}
	}

	exists, err := s.repo.Exists(ctx, userID, name)
	if err != nil {
		return s.failure(ctx, "add", "checking existing entry", err)
	}
	if exists {
		return []string{formatAlreadyTracked(name)}
	}

	appID, err := s.catalog.SearchAppID(ctx, name)
	if err != nil {
		if pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
			return []string{couldNotFindMessage}
		}
		return s.failure(ctx, "add", "searching catalog", err)
	}

	details, err := s.catalog.AppDetails(ctx, appID)
	if err != nil {
		if pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
			return []string{couldNotGetInfoMessage}
		}
		return s.failure(ctx, "add", "fetching catalog details", err)
	}
	if details.FinalPriceCents == nil {
		// free or unpriced apps cannot be tracked
		return []string{couldNotGetInfoMessage}
	}

	entry := &models.WatchEntry{
		ID:           uuid.New(),
		UserID:       userID,
		AppID:        appID,
		GameName:     details.Name,
		TrackedPrice: decimal.New(*details.FinalPriceCents, -2),
		LastChecked:  s.now(),
	}
	if err := s.repo.Insert(ctx, entry); err != nil {
		return s.failure(ctx, "add", "inserting entry", err)
	}

	return []string{formatAdded(details.Name)}
}

func (s *service) handleRemove(ctx context.Context, userID, name string) []string {
	if name == "" {
		return []string{removeUsageMessage}
	}

	removed, err := s.repo.RemoveByName(ctx, userID, name)
	if err != nil {
		return s.failure(ctx, "remove", "removing entry", err)
	}
	if removed > 0 {
		return []string{formatRemoved(name)}
	}
	return []string{formatRemoveNotFound(name)}
}

// handleCheck refreshes every entry sequentially. A failed refresh for one
// entry leaves that row untouched and does not abort the rest of the batch.
func (s *service) handleCheck(ctx context.Context, userID string) []string {
	entries, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return s.failure(ctx, "check", "listing entries", err)
	}
	if len(entries) == 0 {
		return []string{emptyWatchlistMessage}
	}

	replies := make([]string, 0, len(entries)+1)
	for _, entry := range entries {
		details, err := s.catalog.AppDetails(ctx, entry.AppID)
		if err != nil || details.FinalPriceCents == nil {
			if err != nil {
				s.logError(ctx, "refreshing entry", err)
				s.metrics.IncFailure("check")
			}
			replies = append(replies, formatCouldNotRefresh(entry.GameName))
			continue
		}

		newPrice := decimal.New(*details.FinalPriceCents, -2)
		if newPrice.LessThan(entry.TrackedPrice) {
			discount := decimal.NewFromInt(1).Sub(newPrice.Div(entry.TrackedPrice)).Mul(oneHundred)
			replies = append(replies, formatDiscount(entry.GameName, discount, newPrice))
		} else {
			replies = append(replies, formatNoDiscount(entry.GameName, newPrice))
		}

		if err := s.repo.UpdatePrice(ctx, userID, entry.AppID, newPrice, s.now()); err != nil {
			s.logError(ctx, "updating entry price", err)
			s.metrics.IncFailure("check")
		}
	}

	replies = append(replies, checkCompleteMessage)
	return replies
}

func (s *service) handleList(ctx context.Context, userID string) []string {
	entries, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return s.failure(ctx, "list", "listing entries", err)
	}
	if len(entries) == 0 {
		return []string{emptyWatchlistMessage}
	}
	return []string{formatList(entries)}
}

func (s *service) failure(ctx context.Context, command, msg string, err error) []string {
	s.logError(ctx, msg, err)
	s.metrics.IncFailure(command)
	return []string{genericFailureMessage}
}

func (s *service) logError(ctx context.Context, msg string, err error) {
	if s.logger == nil {
		return
	}
	s.logger.Error(ctx, msg, err)
}
