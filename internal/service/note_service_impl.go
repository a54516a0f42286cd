package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/alexanderramin/soapnote/internal/db"
	"github.com/alexanderramin/soapnote/internal/domain"
	"github.com/alexanderramin/soapnote/internal/repository"
	"github.com/alexanderramin/soapnote/internal/soap"
	"github.com/alexanderramin/soapnote/internal/taxonomy"
	"github.com/google/uuid"
)

// Log actions.
const (
	ActionCompose = "compose"
	ActionHold    = "hold"
	ActionReset   = "reset"
	ActionCopy    = "copy"
	ActionAmend   = "amend"
)

// DefaultHistoryLimit applies when History is called without a positive limit.
const DefaultHistoryLimit = 20

type noteService struct {
	catalog  CatalogService
	blocks   repository.BlockRepo
	logs     repository.GenerationLogRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
	now      func() time.Time
}

func NewNoteService(
	catalog CatalogService,
	blocks repository.BlockRepo,
	logs repository.GenerationLogRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) NoteService {
	return &noteService{
		catalog:  catalog,
		blocks:   blocks,
		logs:     logs,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *noteService) compose(ctx context.Context, req ComposeRequest) (*ComposeResult, error) {
	ref, err := s.catalog.Scenario(ctx, req.Scenario)
	if err != nil {
		return nil, err
	}

	fields := soap.Compose(
		ref.Scenario,
		soap.NewSelection(req.AddonIDs...),
		soap.NewAddonCatalog(ref.Module.Addons),
		soap.WithClosingSentences(ref.Module.ClosingSentences...),
	)

	if req.Opening != nil {
		if !taxonomy.OpeningEligible(ref.Group) {
			return nil, fmt.Errorf("%s (%s): %w", ref.Key(), ref.Group.Label(), ErrOpeningNotAllowed)
		}
		fields = soap.ApplyOpening(fields, req.Opening.Context, req.Opening.Status)
	}

	return &ComposeResult{Ref: ref, Label: ref.Scenario.Title, Fields: fields}, nil
}

func (s *noteService) Compose(ctx context.Context, note string, req ComposeRequest) (result *ComposeResult, err error) {
	fields := map[string]any{"scenario": req.Scenario, "addons": len(req.AddonIDs)}
	defer observe(ctx, s.observer, "compose", fields, &err)()

	result, err = s.compose(ctx, req)
	if err != nil {
		return nil, err
	}
	s.record(ctx, s.entry(note, ActionCompose, describe(result.Ref, req)))
	return result, nil
}

func (s *noteService) Hold(ctx context.Context, note string, req ComposeRequest) (result *HoldResult, err error) {
	fields := map[string]any{"scenario": req.Scenario, "note": note}
	defer observe(ctx, s.observer, "hold", fields, &err)()

	composed, err := s.compose(ctx, req)
	if err != nil {
		return nil, err
	}

	block := domain.MergedBlock{
		ID:            uuid.New().String(),
		TemplateLabel: composed.Label,
		Scenario:      composed.Ref.Key(),
		Fields:        composed.Fields,
		CreatedAt:     s.now(),
	}

	var seq int
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		seq, err = repository.NewSQLiteBlockRepo(tx).Append(ctx, note, block)
		if err != nil {
			return err
		}
		details := fmt.Sprintf("#%d %s", seq, describe(composed.Ref, req))
		return repository.NewSQLiteGenerationLogRepo(tx).Create(ctx, s.entry(note, ActionHold, details))
	})
	if err != nil {
		return nil, fmt.Errorf("holding block: %w", err)
	}
	fields["seq"] = seq
	return &HoldResult{Block: block, Seq: seq}, nil
}

func (s *noteService) Held(ctx context.Context, note string) ([]domain.MergedBlock, error) {
	return s.blocks.List(ctx, note)
}

func (s *noteService) Merged(ctx context.Context, note string, current *ComposeResult) (domain.SoapFields, error) {
	held, err := s.blocks.List(ctx, note)
	if err != nil {
		return domain.SoapFields{}, err
	}
	if current != nil {
		return soap.MergeBlocks(held, current.Fields, current.Label), nil
	}
	if len(held) == 0 {
		return domain.SoapFields{}, fmt.Errorf("note %q: %w", note, ErrNothingHeld)
	}
	last := held[len(held)-1]
	return soap.MergeBlocks(held[:len(held)-1], last.Fields, last.TemplateLabel), nil
}

func (s *noteService) Amend(ctx context.Context, note, block string, req AmendRequest) (result *domain.MergedBlock, err error) {
	fields := map[string]any{"note": note, "block": block, "drop": len(req.DropAddonIDs)}
	defer observe(ctx, s.observer, "amend", fields, &err)()

	id, err := s.heldID(ctx, note, block)
	if err != nil {
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		blocks := repository.NewSQLiteBlockRepo(tx)
		b, err := blocks.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if len(req.DropAddonIDs) > 0 {
			ref, err := s.catalog.Scenario(ctx, b.Scenario)
			if err != nil {
				return fmt.Errorf("block %q: %w", b.TemplateLabel, err)
			}
			drop := soap.NewSelection(req.DropAddonIDs...)
			for _, a := range s.catalog.Addons(ctx, ref) {
				if drop.Has(a.ID) {
					b.Fields = soap.Retract(b.Fields, a)
				}
			}
		}
		if req.ClearOpening {
			b.Fields = soap.ClearOpening(b.Fields)
		}

		if err := blocks.UpdateFields(ctx, b.ID, b.Fields); err != nil {
			return err
		}
		result = b
		return repository.NewSQLiteGenerationLogRepo(tx).Create(ctx, s.entry(note, ActionAmend, describeAmend(b, req)))
	})
	if err != nil {
		return nil, fmt.Errorf("amending block: %w", err)
	}
	return result, nil
}

// heldID maps a 1-based position, or a block id, to the id of a block held
// under note.
func (s *noteService) heldID(ctx context.Context, note, block string) (string, error) {
	held, err := s.blocks.List(ctx, note)
	if err != nil {
		return "", err
	}
	if n, err := strconv.Atoi(strings.TrimPrefix(block, "#")); err == nil {
		if n >= 1 && n <= len(held) {
			return held[n-1].ID, nil
		}
		return "", fmt.Errorf("#%d of note %q: %w", n, note, ErrBlockNotHeld)
	}
	for _, b := range held {
		if b.ID == block {
			return b.ID, nil
		}
	}
	return "", fmt.Errorf("%s in note %q: %w", block, note, ErrBlockNotHeld)
}

func (s *noteService) Reset(ctx context.Context, note string) (cleared int, err error) {
	defer observe(ctx, s.observer, "reset", map[string]any{"note": note}, &err)()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		cleared, err = repository.NewSQLiteBlockRepo(tx).Clear(ctx, note)
		if err != nil {
			return err
		}
		details := fmt.Sprintf("cleared %d block(s)", cleared)
		return repository.NewSQLiteGenerationLogRepo(tx).Create(ctx, s.entry(note, ActionReset, details))
	})
	if err != nil {
		return 0, fmt.Errorf("resetting note: %w", err)
	}
	return cleared, nil
}

func (s *noteService) Copy(ctx context.Context, note string, fields domain.SoapFields) (text string, err error) {
	defer observe(ctx, s.observer, "copy", map[string]any{"note": note}, &err)()

	text = soap.FormatForCopy(fields)
	details := fmt.Sprintf("%d chars", utf8.RuneCountInString(text))
	s.record(ctx, s.entry(note, ActionCopy, details))
	return text, nil
}

func (s *noteService) History(ctx context.Context, note string, limit int) ([]domain.GenerationLogEntry, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return s.logs.ListRecent(ctx, note, limit)
}

// record writes a log entry outside any transaction. A failed write is
// reported to the observer as "log-action" and does not fail the caller.
func (s *noteService) record(ctx context.Context, e domain.GenerationLogEntry) {
	err := s.logs.Create(ctx, e)
	if err != nil {
		fields := map[string]any{"note": e.Note, "action": e.Action}
		observe(ctx, s.observer, "log-action", fields, &err)()
	}
}

func (s *noteService) entry(note, action, details string) domain.GenerationLogEntry {
	return domain.GenerationLogEntry{
		ID:        uuid.New().String(),
		Note:      note,
		Action:    action,
		Details:   details,
		CreatedAt: s.now(),
	}
}

func describeAmend(blk *domain.MergedBlock, req AmendRequest) string {
	var b strings.Builder
	b.WriteString(domain.CoalesceStr(blk.Scenario, blk.TemplateLabel))
	if len(req.DropAddonIDs) > 0 {
		b.WriteString(" -")
		b.WriteString(strings.Join(req.DropAddonIDs, ","))
	}
	if req.ClearOpening {
		b.WriteString(" opening=cleared")
	}
	return b.String()
}

func describe(ref ScenarioRef, req ComposeRequest) string {
	var b strings.Builder
	b.WriteString(ref.Key())
	if len(req.AddonIDs) > 0 {
		b.WriteString(" +")
		b.WriteString(strings.Join(req.AddonIDs, ","))
	}
	if req.Opening != nil {
		fmt.Fprintf(&b, " opening=%s:%s", req.Opening.Context, req.Opening.Status)
	}
	return b.String()
}
