package cli

import (
	"bytes"
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/survey/internal/config"
	"github.com/aretw0/survey/internal/logging"
	"github.com/aretw0/survey/internal/testutils"
	"github.com/aretw0/survey/pkg/domain"
	"github.com/aretw0/survey/pkg/persistence"
	"github.com/aretw0/survey/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoQuestions = `
entry: 1
questions:
  - id: 1
    prompt: Email?
    kind: short_text
    next: 2
  - id: 2
    prompt: Color?
    kind: single_choice
    options:
      - { label: Red, value: R }
      - { label: Blue, value: B }
`

func writeCatalog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(twoQuestions), 0644))
	return path
}

func TestLoadCatalog(t *testing.T) {
	ctx := context.Background()

	t.Run("Builtin", func(t *testing.T) {
		c, err := LoadCatalog(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, 17, c.Len())
	})

	t.Run("File", func(t *testing.T) {
		c, err := LoadCatalog(ctx, writeCatalog(t))
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2}, c.IDs())
	})

	t.Run("Directory", func(t *testing.T) {
		dir, _ := testutils.SetupQuestionRepo(t, map[string]string{"1.md": "---\nkind: text\n---\nName?"})
		c, err := LoadCatalog(ctx, dir)
		require.NoError(t, err)
		q, err := c.Get(1)
		require.NoError(t, err)
		assert.Equal(t, "Name?", q.Prompt)
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := LoadCatalog(ctx, filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestOpenStorage_Kinds(t *testing.T) {
	ctx := context.Background()
	logger := logging.NewNop()

	mr := miniredis.RunT(t)

	cases := map[string]config.StoreConfig{
		"memory": {Kind: config.StoreMemory, Lock: true},
		"file":   {Kind: config.StoreFile, Path: filepath.Join(t.TempDir(), "subs.json")},
		"redis":  {Kind: config.StoreRedis, Lock: true, Redis: config.RedisConfig{Addr: mr.Addr(), Key: "bucket"}},
	}
	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			s, err := OpenStorage(cfg, logger)
			require.NoError(t, err)
			defer s.Close()
			assert.Equal(t, cfg.Lock, s.Locker != nil)

			gw := s.Gateway(logger)
			require.NoError(t, gw.AppendSubmission(ctx, domain.Submission{Answers: []domain.Answer{{QuestionID: 1, Value: domain.Single("x")}}}))
			subs, err := gw.FetchPriorSubmissions(ctx)
			require.NoError(t, err)
			assert.Len(t, subs, 1)
		})
	}

	assert.True(t, mr.Exists("bucket"))
}

type recordingLocker struct {
	key string
	ttl time.Duration
}

func (l *recordingLocker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	l.key, l.ttl = key, ttl
	return func(context.Context) error { return nil }, nil
}

func TestStorage_GatewayUsesLockSettings(t *testing.T) {
	ctx := context.Background()
	logger := logging.NewNop()
	sub := domain.Submission{Answers: []domain.Answer{{QuestionID: 1, Value: domain.Single("x")}}}

	s, err := OpenStorage(config.StoreConfig{Kind: config.StoreMemory, Lock: true, LockKey: "team-a", LockTTL: 5 * time.Second}, logger)
	require.NoError(t, err)
	locker := &recordingLocker{}
	s.Locker = locker
	require.NoError(t, s.Gateway(logger).AppendSubmission(ctx, sub))
	assert.Equal(t, "team-a", locker.key)
	assert.Equal(t, 5*time.Second, locker.ttl)

	s, err = OpenStorage(config.StoreConfig{Kind: config.StoreMemory, Lock: true}, logger)
	require.NoError(t, err)
	locker = &recordingLocker{}
	s.Locker = locker
	require.NoError(t, s.Gateway(logger).AppendSubmission(ctx, sub))
	assert.Equal(t, persistence.DefaultLockKey, locker.key)
	assert.Equal(t, persistence.DefaultLockTTL, locker.ttl)
}

func TestOpenStorage_Rejects(t *testing.T) {
	logger := logging.NewNop()
	for name, cfg := range map[string]config.StoreConfig{
		"unknown kind":   {Kind: "s3"},
		"textdb no key":  {Kind: config.StoreTextDB},
		"bad redact":     {Kind: config.StoreMemory, Redact: []string{"("}},
		"bad encryption": {Kind: config.StoreMemory, EncryptionKey: "short"},
	} {
		_, err := OpenStorage(cfg, logger)
		assert.Error(t, err, name)
	}
}

func TestOpenStorage_RedactsThenEncrypts(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "subs.json")
	cfg := config.StoreConfig{
		Kind:          config.StoreFile,
		Path:          path,
		Redact:        []string{`[\w.]+@[\w.]+`},
		EncryptionKey: base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{7}, 32)),
	}
	s, err := OpenStorage(cfg, logging.NewNop())
	require.NoError(t, err)

	gw := persistence.NewGateway(s.Store)
	require.NoError(t, gw.AppendSubmission(ctx, domain.Submission{Answers: []domain.Answer{
		{QuestionID: 1, Value: domain.Single("ana@example.com")},
	}}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "__encrypted__")
	assert.NotContains(t, string(raw), "example.com")

	subs, err := gw.FetchPriorSubmissions(ctx)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "***", subs[0].Answers[0].Value.String())
}

func TestExecute_JSONSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subs.json")
	cfg := config.Default()
	cfg.Catalog = writeCatalog(t)
	cfg.Store = config.StoreConfig{Kind: config.StoreFile, Path: path}

	out := &bytes.Buffer{}
	err := Execute(context.Background(), RunOptions{
		Config: cfg,
		JSON:   true,
		In:     strings.NewReader("\"me@x.io\"\n{\"answer\":\"B\"}\n"),
		Out:    out,
	}, logging.NewNop())
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `[[{"questionId":1,"answer":"me@x.io"},{"questionId":2,"answer":"B"}]]`, string(raw))
	assert.Contains(t, out.String(), `"type":"completed"`)
}

func TestExecute_TextAbandoned(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subs.json")
	cfg := config.Default()
	cfg.Catalog = writeCatalog(t)
	cfg.Store = config.StoreConfig{Kind: config.StoreFile, Path: path}

	out := &bytes.Buffer{}
	err := Execute(context.Background(), RunOptions{
		Config: cfg,
		In:     strings.NewReader("me@x.io\nquit\n"),
		Out:    out,
	}, logging.NewNop())
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Survey abandoned")
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "nothing is written when the survey is abandoned")
}
