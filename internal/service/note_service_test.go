package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/soapnote/internal/domain"
	"github.com/alexanderramin/soapnote/internal/repository"
	"github.com/alexanderramin/soapnote/internal/soap"
	"github.com/alexanderramin/soapnote/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteService_Compose(t *testing.T) {
	f := setupNotes(t)
	ctx := context.Background()

	res, err := f.notes.Compose(ctx, "visit", ComposeRequest{
		Scenario: "se_absent",
		AddonIDs: []string{"gi", "hypo", "unknown"},
	})
	require.NoError(t, err)

	assert.Equal(t, "glp1/se_absent", res.Ref.Key())
	assert.Equal(t, "副作用なし継続", res.Label)
	assert.Equal(t, "継続。\n低血糖に注意。\n胃腸症状に注意。\n次回受診時に経過を確認する。", res.Fields.P)
	assert.Equal(t, "副作用なし継続 S", res.Fields.S)

	entries, err := f.notes.History(ctx, "visit", 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ActionCompose, entries[0].Action)
	assert.Equal(t, "glp1/se_absent +gi,hypo,unknown", entries[0].Details)
}

func TestNoteService_ComposeOpening(t *testing.T) {
	f := setupNotes(t)
	ctx := context.Background()
	opening := &Opening{Context: soap.OpeningChangedDrug, Status: soap.StatusBetter}

	res, err := f.notes.Compose(ctx, "visit", ComposeRequest{Scenario: "se_absent", Opening: opening})
	require.NoError(t, err)
	assert.Equal(t, "前回、薬変更。体調は改善している。\n副作用なし継続 S", res.Fields.S)

	_, err = f.notes.Compose(ctx, "visit", ComposeRequest{Scenario: "nausea", Opening: opening})
	assert.ErrorIs(t, err, ErrOpeningNotAllowed)

	_, err = f.notes.Compose(ctx, "visit", ComposeRequest{Scenario: "nope"})
	assert.ErrorIs(t, err, ErrScenarioNotFound)

	entries, err := f.notes.History(ctx, "visit", 10)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "failed composes are not logged")
}

func TestNoteService_HoldAndMerge(t *testing.T) {
	f := setupNotes(t)
	ctx := context.Background()

	first, err := f.notes.Hold(ctx, "visit", ComposeRequest{Scenario: "start"})
	require.NoError(t, err)
	second, err := f.notes.Hold(ctx, "visit", ComposeRequest{Scenario: "nausea"})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Seq)
	assert.Equal(t, 2, second.Seq)

	held, err := f.notes.Held(ctx, "visit")
	require.NoError(t, err)
	require.Len(t, held, 2)
	assert.Equal(t, "開始", held[0].TemplateLabel)

	current, err := f.notes.Compose(ctx, "visit", ComposeRequest{Scenario: "statin/cp_good"})
	require.NoError(t, err)

	merged, err := f.notes.Merged(ctx, "visit", current)
	require.NoError(t, err)
	assert.Equal(t,
		"----\n▶ 開始\n開始 O\n\n----\n▶ 悪心\n悪心 O\n\n----\n▶ 服薬良好\n服薬良好 O",
		merged.O)

	heldOnly, err := f.notes.Merged(ctx, "visit", nil)
	require.NoError(t, err)
	assert.Equal(t, "----\n▶ 開始\n開始 S\n\n----\n▶ 悪心\n悪心 S", heldOnly.S)

	_, err = f.notes.Merged(ctx, "other", nil)
	assert.ErrorIs(t, err, ErrNothingHeld)

	otherNote, err := f.notes.Held(ctx, "other")
	require.NoError(t, err)
	assert.Empty(t, otherNote, "notes do not share held blocks")
}

func TestNoteService_Reset(t *testing.T) {
	f := setupNotes(t)
	ctx := context.Background()

	for range 3 {
		_, err := f.notes.Hold(ctx, "visit", ComposeRequest{Scenario: "start"})
		require.NoError(t, err)
	}
	cleared, err := f.notes.Reset(ctx, "visit")
	require.NoError(t, err)
	assert.Equal(t, 3, cleared)

	n, err := f.blocks.Count(ctx, "visit")
	require.NoError(t, err)
	assert.Zero(t, n)

	res, err := f.notes.Hold(ctx, "visit", ComposeRequest{Scenario: "start"})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Seq, "seq restarts after reset")

	entries, err := f.notes.History(ctx, "visit", 10)
	require.NoError(t, err)
	require.Len(t, entries, 5)
	assert.Equal(t, ActionHold, entries[0].Action)
	assert.Equal(t, ActionReset, entries[1].Action)
	assert.Equal(t, "cleared 3 block(s)", entries[1].Details)
}

func TestNoteService_HoldRollsBackOnLogFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	cat, err := NewCatalogService(loadedOf(glpModule()))
	require.NoError(t, err)
	blocks := repository.NewSQLiteBlockRepo(database)
	logs := repository.NewSQLiteGenerationLogRepo(database)

	// Append runs as a query, so the first exec is the log insert.
	boom := errors.New("disk full")
	uow := &testutil.FailOnNthExecUoW{DB: database, FailOn: 1, Err: boom}
	notes := NewNoteService(cat, blocks, logs, uow)

	_, err = notes.Hold(ctx, "visit", ComposeRequest{Scenario: "start"})
	require.ErrorIs(t, err, boom)

	n, err := blocks.Count(ctx, "visit")
	require.NoError(t, err)
	assert.Zero(t, n, "block insert must roll back with the log entry")
}

func TestNoteService_Amend(t *testing.T) {
	f := setupNotes(t)
	ctx := context.Background()

	_, err := f.notes.Hold(ctx, "visit", ComposeRequest{Scenario: "start"})
	require.NoError(t, err)
	held, err := f.notes.Hold(ctx, "visit", ComposeRequest{
		Scenario: "se_absent",
		AddonIDs: []string{"gi", "hypo"},
		Opening:  &Opening{Context: soap.OpeningChangedDrug, Status: soap.StatusBetter},
	})
	require.NoError(t, err)
	assert.Equal(t, "glp1/se_absent", held.Block.Scenario)

	got, err := f.notes.Amend(ctx, "visit", "2", AmendRequest{DropAddonIDs: []string{"gi", "unknown"}})
	require.NoError(t, err)
	assert.Equal(t, "継続。\n低血糖に注意。\n次回受診時に経過を確認する。", got.Fields.P)
	assert.Equal(t, "前回、薬変更。体調は改善している。\n副作用なし継続 S", got.Fields.S)

	got, err = f.notes.Amend(ctx, "visit", held.Block.ID, AmendRequest{ClearOpening: true})
	require.NoError(t, err)
	assert.Equal(t, "副作用なし継続 S", got.Fields.S)

	stored, err := f.blocks.GetByID(ctx, held.Block.ID)
	require.NoError(t, err)
	assert.Equal(t, got.Fields, stored.Fields)

	entries, err := f.notes.History(ctx, "visit", 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, ActionAmend, entries[0].Action)
	assert.Equal(t, "glp1/se_absent opening=cleared", entries[0].Details)
	assert.Equal(t, "glp1/se_absent -gi,unknown", entries[1].Details)
}

func TestNoteService_AmendUnknownBlock(t *testing.T) {
	f := setupNotes(t)
	ctx := context.Background()

	_, err := f.notes.Hold(ctx, "visit", ComposeRequest{Scenario: "start"})
	require.NoError(t, err)

	for _, block := range []string{"0", "#2", "not-an-id"} {
		_, err := f.notes.Amend(ctx, "visit", block, AmendRequest{ClearOpening: true})
		assert.ErrorIs(t, err, ErrBlockNotHeld, "block %q", block)
	}
	_, err = f.notes.Amend(ctx, "other", "1", AmendRequest{ClearOpening: true})
	assert.ErrorIs(t, err, ErrBlockNotHeld, "blocks of another note are not reachable")
}

type failingLogRepo struct {
	repository.GenerationLogRepo
	err error
}

func (r failingLogRepo) Create(context.Context, domain.GenerationLogEntry) error {
	return r.err
}

func TestNoteService_ComposeSurvivesLogFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	cat, err := NewCatalogService(loadedOf(glpModule()))
	require.NoError(t, err)

	boom := errors.New("disk full")
	rec := &recordingObserver{}
	notes := NewNoteService(cat, repository.NewSQLiteBlockRepo(database),
		failingLogRepo{err: boom}, testutil.NewTestUoW(database), rec)

	res, err := notes.Compose(ctx, "visit", ComposeRequest{Scenario: "se_absent"})
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.NotEmpty(t, res.Fields.P)

	text, err := notes.Copy(ctx, "visit", res.Fields)
	require.NoError(t, err)
	assert.Contains(t, text, "【P】")

	require.Len(t, rec.events, 4)
	assert.Equal(t, "log-action", rec.events[0].Name)
	assert.ErrorIs(t, rec.events[0].Err, boom)
	assert.Equal(t, ActionCompose, rec.events[0].Fields["action"])
	assert.Equal(t, "compose", rec.events[1].Name)
	assert.True(t, rec.events[1].Success)
	assert.Equal(t, "log-action", rec.events[2].Name)
	assert.Equal(t, ActionCopy, rec.events[2].Fields["action"])
	assert.Equal(t, "copy", rec.events[3].Name)
	assert.True(t, rec.events[3].Success)
}

func TestNoteService_Copy(t *testing.T) {
	f := setupNotes(t)
	ctx := context.Background()

	text, err := f.notes.Copy(ctx, "visit", domain.SoapFields{S: "s", O: "o", A: "a", P: "p"})
	require.NoError(t, err)
	assert.Equal(t, "【S】\ns\n\n【O】\no\n\n【A】\na\n\n【P】\np", text)

	entries, err := f.notes.History(ctx, "", 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ActionCopy, entries[0].Action)
	assert.Equal(t, "26 chars", entries[0].Details)
}
