package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sourcegraph/conc/pool"

	"github.com/matchday/prediction-league/internal/domain/prediction"
	"github.com/matchday/prediction-league/internal/domain/round"
	"github.com/matchday/prediction-league/internal/domain/standings"
	"github.com/matchday/prediction-league/internal/domain/user"
	"github.com/matchday/prediction-league/internal/platform/cache"
	"github.com/matchday/prediction-league/internal/platform/logging"
)

const (
	standingsCachePrefix = "standings:"

	// ScopeOverall selects the table summed across every completed round.
	ScopeOverall = "overall"
)

// StandingsService computes ranked tables. Only COMPLETED rounds contribute
// points; every PLAYER appears, at 0 when they never predicted. Movement
// compares the requested table against the one as of the previous completed
// round, nil when there is no earlier snapshot to compare against.
type StandingsService struct {
	roundRepo      round.Repository
	predictionRepo prediction.Repository
	userRepo       user.Repository
	cache          *cache.Store
	logger         *logging.Logger
}

func NewStandingsService(
	roundRepo round.Repository,
	predictionRepo prediction.Repository,
	userRepo user.Repository,
	cacheStore *cache.Store,
	logger *logging.Logger,
) *StandingsService {
	if logger == nil {
		logger = logging.Default()
	}
	return &StandingsService{
		roundRepo:      roundRepo,
		predictionRepo: predictionRepo,
		userRepo:       userRepo,
		cache:          cacheStore,
		logger:         logger,
	}
}

// StandingsRow is one ranked entry plus its rank movement. Movement is nil
// when the user has no previous snapshot, which is different from 0.
type StandingsRow struct {
	UserID      string
	Name        string
	TotalPoints int
	Rank        int
	Movement    *int
}

type StandingsView struct {
	Scope string
	Rows  []StandingsRow
}

type StandingsInput struct {
	// RoundID scopes the table to one completed round; empty means overall.
	RoundID string
	// MemberFilter restricts the aggregation to these users; ranks and
	// movement are computed within the subset.
	MemberFilter []string
}

func (s *StandingsService) CalculateStandings(ctx context.Context, input StandingsInput) (StandingsView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.CalculateStandings")
	defer span.End()

	scope := strings.TrimSpace(input.RoundID)
	if scope == "" {
		scope = ScopeOverall
	}

	if s.cache == nil {
		return s.calculate(ctx, scope, input.MemberFilter)
	}

	key := standingsCacheKey(scope, input.MemberFilter)
	value, err := s.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return s.calculate(ctx, scope, input.MemberFilter)
	})
	if err != nil {
		return StandingsView{}, err
	}
	view, ok := value.(StandingsView)
	if !ok {
		return StandingsView{}, fmt.Errorf("unexpected cached standings type %T", value)
	}
	return view, nil
}

func (s *StandingsService) calculate(ctx context.Context, scope string, memberFilter []string) (StandingsView, error) {
	completed, err := s.completedRoundsNewestFirst(ctx)
	if err != nil {
		return StandingsView{}, err
	}

	currentIDs, previousIDs, hasPrevious, err := s.snapshotRoundIDs(ctx, scope, completed)
	if err != nil {
		return StandingsView{}, err
	}

	include := memberSet(memberFilter)

	var current, previous []standings.Row
	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		rows, buildErr := s.buildTable(ctx, currentIDs, include)
		current = rows
		return buildErr
	})
	if hasPrevious {
		p.Go(func(ctx context.Context) error {
			rows, buildErr := s.buildTable(ctx, previousIDs, include)
			previous = rows
			return buildErr
		})
	}
	if err := p.Wait(); err != nil {
		return StandingsView{}, err
	}

	var movement map[string]*int
	if hasPrevious {
		movement = standings.Movement(current, previous)
	}

	view := StandingsView{Scope: scope, Rows: make([]StandingsRow, 0, len(current))}
	for _, row := range current {
		out := StandingsRow{
			UserID:      row.UserID,
			Name:        row.Name,
			TotalPoints: row.TotalPoints,
			Rank:        row.Rank,
		}
		if movement != nil {
			out.Movement = movement[row.UserID]
		}
		view.Rows = append(view.Rows, out)
	}
	return view, nil
}

// snapshotRoundIDs resolves which completed rounds feed the current table and
// which feed the previous one. completed is ordered newest first.
func (s *StandingsService) snapshotRoundIDs(ctx context.Context, scope string, completed []round.Round) (current, previous []string, hasPrevious bool, err error) {
	if scope == ScopeOverall {
		current = roundIDs(completed)
		if len(completed) > 1 {
			// Overall movement compares against the table as it stood before
			// the most recently completed round.
			return current, roundIDs(completed[1:]), true, nil
		}
		// Fewer than two completed rounds means there is no earlier table to
		// compare against, so movement stays nil.
		return current, nil, false, nil
	}

	rnd, exists, err := s.roundRepo.GetByID(ctx, scope)
	if err != nil {
		return nil, nil, false, fmt.Errorf("get round: %w", err)
	}
	if !exists {
		return nil, nil, false, fmt.Errorf("%w: round=%s", ErrNotFound, scope)
	}
	if rnd.Status != round.StatusCompleted {
		return nil, nil, false, fmt.Errorf("%w: standings need a COMPLETED round, status=%s", ErrInvalidState, rnd.Status)
	}

	for idx, item := range completed {
		if item.ID != rnd.ID {
			continue
		}
		if idx+1 < len(completed) {
			return []string{rnd.ID}, []string{completed[idx+1].ID}, true, nil
		}
		return []string{rnd.ID}, nil, false, nil
	}
	// The round completed between the two reads; treat it as the newest.
	return []string{rnd.ID}, roundIDs(completed), len(completed) > 0, nil
}

// buildTable sums awarded points over the given rounds and ranks the result.
// Every PLAYER gets a row, users without predictions sit at 0 points. A
// non-nil include set narrows the table to those users before ranking.
func (s *StandingsService) buildTable(ctx context.Context, roundIDs []string, include map[string]bool) ([]standings.Row, error) {
	players, err := s.userRepo.ListByRole(ctx, user.RolePlayer)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	rows := make([]standings.Row, 0, len(players))
	index := make(map[string]int, len(players))
	for _, p := range players {
		if include != nil && !include[p.ID] {
			continue
		}
		index[p.ID] = len(rows)
		rows = append(rows, standings.Row{UserID: p.ID, Name: p.Name})
	}

	if len(roundIDs) > 0 {
		predictions, err := s.predictionRepo.ListByRounds(ctx, roundIDs)
		if err != nil {
			return nil, fmt.Errorf("list predictions by rounds: %w", err)
		}
		for _, item := range predictions {
			if item.Points == nil {
				continue
			}
			if include != nil && !include[item.UserID] {
				continue
			}
			idx, ok := index[item.UserID]
			if !ok {
				// Prediction from a user outside the player roster; keep the
				// table consistent and leave the points out.
				s.logger.WarnContext(ctx, "prediction owner missing from player roster",
					"user_id", item.UserID, "prediction_id", item.ID)
				continue
			}
			rows[idx].TotalPoints += *item.Points
		}
	}

	standings.Rank(rows)
	return rows, nil
}

// completedRoundsNewestFirst orders completed rounds by deadline then id,
// newest first, which defines what "the previous round" means for movement.
func (s *StandingsService) completedRoundsNewestFirst(ctx context.Context) ([]round.Round, error) {
	completed, err := s.roundRepo.ListByStatus(ctx, round.StatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("list completed rounds: %w", err)
	}
	sort.SliceStable(completed, func(i, j int) bool {
		di, dj := completed[i].Deadline, completed[j].Deadline
		switch {
		case di == nil && dj == nil:
		case di == nil:
			return false
		case dj == nil:
			return true
		case !di.Equal(*dj):
			return di.After(*dj)
		}
		return completed[i].ID > completed[j].ID
	})
	return completed, nil
}

func roundIDs(rounds []round.Round) []string {
	out := make([]string, 0, len(rounds))
	for _, item := range rounds {
		out = append(out, item.ID)
	}
	return out
}

func memberSet(filter []string) map[string]bool {
	var out map[string]bool
	for _, id := range filter {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if out == nil {
			out = make(map[string]bool, len(filter))
		}
		out[id] = true
	}
	return out
}

func standingsCacheKey(scope string, memberFilter []string) string {
	if len(memberFilter) == 0 {
		return standingsCachePrefix + scope
	}
	filter := make([]string, 0, len(memberFilter))
	for _, id := range memberFilter {
		if id = strings.TrimSpace(id); id != "" {
			filter = append(filter, id)
		}
	}
	sort.Strings(filter)
	return standingsCachePrefix + scope + ":" + strings.Join(filter, ",")
}
