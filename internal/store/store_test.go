package store

import (
	"database/sql"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vexbolts/hunt-tracker/internal/config"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Config{
		DataDir:      dir,
		DBPath:       filepath.Join(dir, config.DBFileName),
		TemplatePath: filepath.Join(dir, config.TemplateFileName),
	}
	st, err := Open(cfg, log.New(io.Discard, "", 0))
	require.NoError(t, err)
	t.Cleanup(st.Close)
	return st
}

func insertItem(t *testing.T, st *Store, name, balance string, points int) int64 {
	t.Helper()
	var id int64
	err := st.Write(func(tx *sql.Tx) error {
		res, err := tx.Exec(
			"INSERT INTO Items (Name, Description, Points, Balance) VALUES (?, ?, ?, ?)",
			name, "Test fixture", points, balance,
		)
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		return err
	})
	require.NoError(t, err)
	return id
}

func insertDrop(t *testing.T, st *Store, balance string, enemyClass, pool *string) {
	t.Helper()
	err := st.Write(func(tx *sql.Tx) error {
		_, err := tx.Exec(
			"INSERT INTO Drops (ItemBalance, EnemyClass, ExtraItemPool) VALUES (?, ?, ?)",
			balance, enemyClass, pool,
		)
		return err
	})
	require.NoError(t, err)
}

func ptr(s string) *string { return &s }

func TestOpenBuildsTemplateAndDatabase(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Config{
		DataDir:      dir,
		DBPath:       filepath.Join(dir, config.DBFileName),
		TemplatePath: filepath.Join(dir, config.TemplateFileName),
	}
	st, err := Open(cfg, log.New(io.Discard, "", 0))
	require.NoError(t, err)
	defer st.Close()

	_, err = os.Stat(cfg.TemplatePath)
	assert.NoError(t, err)
	_, err = os.Stat(cfg.DBPath)
	assert.NoError(t, err)

	// A fresh database carries the playthrough start stamp
	start, err := st.MetaValue("StartTime")
	require.NoError(t, err)
	assert.NotEmpty(t, start)

	version, err := st.MetaValue("Version")
	require.NoError(t, err)
	assert.Equal(t, "1", version)
}

func TestWriteRollsBackOnError(t *testing.T) {
	st := newTestStore(t)

	boom := errors.New("boom")
	err := st.Write(func(tx *sql.Tx) error {
		if _, err := tx.Exec(
			`INSERT INTO SaveQuits (Map, Station) VALUES ("X", "Y")`,
		); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	count, err := st.Scalar("SELECT COUNT(*) FROM SaveQuits")
	require.NoError(t, err)
	assert.Equal(t, "0", count)
}

func TestRecordCollectionNotice(t *testing.T) {
	st := newTestStore(t)
	insertItem(t, st, "Fixture Blade", "bal.blade", 5)

	notice, err := st.RecordCollection("bal.blade")
	require.NoError(t, err)
	assert.Equal(t, "Fixture Blade", notice.Title)
	assert.Equal(t, "+5 points", notice.Message)
	assert.Equal(t, 5, notice.Duration)

	// Duplicates get a fixed short notice
	notice, err = st.RecordCollection("bal.blade")
	require.NoError(t, err)
	assert.Equal(t, "Duplicate Fixture Blade", notice.Title)
	assert.Equal(t, "Collected 2 times", notice.Message)
	assert.Equal(t, 4, notice.Duration)
}

func TestRecordCollectionNoticeDurationClamps(t *testing.T) {
	st := newTestStore(t)
	insertItem(t, st, "Fixture Pin", "bal.pin", 1)
	insertItem(t, st, "Fixture Crown", "bal.crown", 20)

	notice, err := st.RecordCollection("bal.pin")
	require.NoError(t, err)
	assert.Equal(t, "+1 point", notice.Message)
	assert.Equal(t, 4, notice.Duration)

	notice, err = st.RecordCollection("bal.crown")
	require.NoError(t, err)
	assert.Equal(t, "+20 points", notice.Message)
	assert.Equal(t, 8, notice.Duration)
}

func TestRecordCollectionUnknownBalance(t *testing.T) {
	st := newTestStore(t)

	_, err := st.RecordCollection("bal.nonsense")
	assert.ErrorIs(t, err, ErrUnknownBalance)
}

func TestAvailableTokensMath(t *testing.T) {
	st := newTestStore(t)
	err := st.Write(func(tx *sql.Tx) error {
		_, err := tx.Exec(
			`INSERT INTO MissionTokens (MissionClass, InitialTokens, SubsequentTokens)
			VALUES ("mission.final", 2, 20)`,
		)
		return err
	})
	require.NoError(t, err)

	tokens, err := st.AvailableTokens()
	require.NoError(t, err)
	assert.Equal(t, 1, tokens, "baseline is one free token")

	granted, err := st.RecordMission("mission.final")
	require.NoError(t, err)
	assert.Equal(t, 2, granted)

	tokens, err = st.AvailableTokens()
	require.NoError(t, err)
	assert.Equal(t, 3, tokens)

	granted, err = st.RecordMission("mission.final")
	require.NoError(t, err)
	assert.Equal(t, 20, granted)

	tokens, err = st.AvailableTokens()
	require.NoError(t, err)
	assert.Equal(t, 23, tokens)
}

func TestRecordMissionWithoutTokenRule(t *testing.T) {
	st := newTestStore(t)

	granted, err := st.RecordMission("mission.side")
	require.NoError(t, err)
	assert.Zero(t, granted)

	// Still recorded for the history
	count, err := st.Scalar(
		`SELECT COUNT(*) FROM CompletedMissions WHERE MissionClass = "mission.side"`,
	)
	require.NoError(t, err)
	assert.Equal(t, "1", count)
}

func TestRedeemWithToken(t *testing.T) {
	st := newTestStore(t)
	insertItem(t, st, "Fixture Idol", "bal.idol", 3)
	insertItem(t, st, "Fixture Ring", "bal.ring", 1)

	notice, err := st.RedeemWithToken("bal.idol")
	require.NoError(t, err)
	assert.Equal(t, "Fixture Idol", notice.Title)

	collected, err := st.AlreadyCollected("bal.idol")
	require.NoError(t, err)
	assert.True(t, collected)

	tokens, err := st.AvailableTokens()
	require.NoError(t, err)
	assert.Zero(t, tokens)

	_, err = st.RedeemWithToken("bal.idol")
	assert.ErrorIs(t, err, ErrAlreadyCollected)

	_, err = st.RedeemWithToken("bal.ring")
	assert.ErrorIs(t, err, ErrNoTokens)

	// Neither failed attempt may have touched the ledgers
	count, err := st.Scalar("SELECT COUNT(*) FROM TokenRedeems")
	require.NoError(t, err)
	assert.Equal(t, "1", count)
}

func TestExpandBalance(t *testing.T) {
	st := newTestStore(t)
	insertItem(t, st, "Fixture Variant", "bal.variant", 1)
	err := st.Write(func(tx *sql.Tx) error {
		_, err := tx.Exec(
			`INSERT INTO ExpandableBalances (RootBalance, Part, ExpandedBalance)
			VALUES ("bal.root", "part.variant", "bal.variant")`,
		)
		return err
	})
	require.NoError(t, err)

	expanded, err := st.ExpandBalance("bal.root", []string{"part.other", "part.variant"})
	require.NoError(t, err)
	assert.Equal(t, "bal.variant", expanded)

	// Unmapped parts leave the balance untouched
	expanded, err = st.ExpandBalance("bal.root", []string{"part.other"})
	require.NoError(t, err)
	assert.Equal(t, "bal.root", expanded)

	expanded, err = st.ExpandBalance("bal.plain", nil)
	require.NoError(t, err)
	assert.Equal(t, "bal.plain", expanded)
}

func TestDropRules(t *testing.T) {
	st := newTestStore(t)
	insertItem(t, st, "Fixture Axe", "bal.axe", 2)
	insertItem(t, st, "Fixture Orb", "bal.orb", 1)
	insertDrop(t, st, "bal.axe", ptr("enemy.keeper"), nil)
	insertDrop(t, st, "bal.orb", nil, nil)

	tracked, err := st.IsBalanceTracked("bal.axe")
	require.NoError(t, err)
	assert.True(t, tracked)

	tracked, err = st.IsBalanceTracked("bal.nonsense")
	require.NoError(t, err)
	assert.False(t, tracked)

	worldDrop, err := st.MayWorldDrop("bal.orb")
	require.NoError(t, err)
	assert.True(t, worldDrop)

	worldDrop, err = st.MayWorldDrop("bal.axe")
	require.NoError(t, err)
	assert.False(t, worldDrop)

	valid, err := st.IsValidDrop("bal.axe", "enemy.keeper", nil)
	require.NoError(t, err)
	assert.True(t, valid)

	valid, err = st.IsValidDrop("bal.axe", "enemy.stranger", nil)
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestDropRuleExtraItemPool(t *testing.T) {
	st := newTestStore(t)
	insertItem(t, st, "Fixture Lance", "bal.lance", 5)
	insertDrop(t, st, "bal.lance", ptr("enemy.guardian"), ptr("pool.raid"))

	// The qualified rule only matches when the request carried the pool
	valid, err := st.IsValidDrop("bal.lance", "enemy.guardian", nil)
	require.NoError(t, err)
	assert.False(t, valid)

	valid, err = st.IsValidDrop("bal.lance", "enemy.guardian", ptr("pool.raid"))
	require.NoError(t, err)
	assert.True(t, valid)
}

func TestProgressCounts(t *testing.T) {
	st := newTestStore(t)

	before, err := st.Progress()
	require.NoError(t, err)

	insertItem(t, st, "Fixture Coin", "bal.coin", 7)
	_, err = st.RecordCollection("bal.coin")
	require.NoError(t, err)
	// A duplicate must not move the counters
	_, err = st.RecordCollection("bal.coin")
	require.NoError(t, err)

	after, err := st.Progress()
	require.NoError(t, err)
	assert.Equal(t, before.CollectedCount+1, after.CollectedCount)
	assert.Equal(t, before.TotalCount+1, after.TotalCount)
	assert.Equal(t, before.CollectedPoints+7, after.CollectedPoints)
}

func TestResetRestoresTemplate(t *testing.T) {
	st := newTestStore(t)
	insertItem(t, st, "Fixture Relic", "bal.relic", 1)
	_, err := st.RecordCollection("bal.relic")
	require.NoError(t, err)
	_, err = st.RecordMission("mission.any")
	require.NoError(t, err)

	require.NoError(t, st.Reset())

	// Fixtures live in the database, not the template, so they are gone
	tracked, err := st.IsBalanceTracked("bal.relic")
	require.NoError(t, err)
	assert.False(t, tracked)

	count, err := st.Scalar("SELECT COUNT(*) FROM Collected")
	require.NoError(t, err)
	assert.Equal(t, "0", count)

	tokens, err := st.AvailableTokens()
	require.NoError(t, err)
	assert.Equal(t, 1, tokens)

	start, err := st.MetaValue("StartTime")
	require.NoError(t, err)
	assert.NotEmpty(t, start)
}
