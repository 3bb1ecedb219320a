package core_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/Tresillo2017/classlimit/core"
	"github.com/Tresillo2017/classlimit/mock"
	"github.com/bytedance/sonic"
	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestExchangeRoundTrip(t *testing.T) {
	src := newMockRoster(t)
	src.Recalculate(core.Config{RequiredAttendancePercent: 70, TotalWeeks: 12, SessionHours: 2})

	data, err := core.EncodeExchange(src)
	require.NoError(t, err)

	plan, err := core.DecodeExchange(data)
	require.NoError(t, err)

	dst := core.NewRoster(log.NewNopLogger(), core.DefaultConfig())
	plan.Apply(dst)

	assert.Equal(t, src.Config(), dst.Config())
	require.Equal(t, src.Len(), dst.Len())
	for i, s := range dst.Subjects() {
		orig := src.Subjects()[i]
		assert.Equal(t, orig.Name, s.Name)
		assert.Equal(t, orig.WeeklyHours, s.WeeklyHours)
		assert.Equal(t, orig.CurrentSkips, s.CurrentSkips)
		assert.Equal(t, 0, s.AllowedSkips)
	}
}

func TestExchangeOmitsAllowedSkips(t *testing.T) {
	r := newMockRoster(t)
	r.Recalculate(core.DefaultConfig())

	data, err := core.EncodeExchange(r)
	require.NoError(t, err)

	assert.NotContains(t, string(data), "allowed_skips")

	var doc map[string]interface{}
	require.NoError(t, sonic.ConfigStd.Unmarshal(data, &doc))
	assert.EqualValues(t, 1, doc["version"])
	assert.EqualValues(t, 80, doc["required_attendance"])
	assert.EqualValues(t, 15, doc["total_weeks"])
	assert.EqualValues(t, 1, doc["session_hours"])

	subjects, ok := doc["subjects"].([]interface{})
	require.True(t, ok)
	require.Len(t, subjects, len(mock.MockSubjects))

	first := subjects[0].(map[string]interface{})
	assert.Equal(t, "Algorithms", first["name"])
	assert.EqualValues(t, 4, first["weekly_hours"])
	assert.EqualValues(t, 1, first["current_skips"])
	assert.Len(t, first, 3)
	assert.Equal(t, "Computer Networks", subjects[3].(map[string]interface{})["name"])
}

func TestDecodeExchangeLiteral(t *testing.T) {
	plan, err := core.DecodeExchange([]byte(mock.ExchangeDocument))
	require.NoError(t, err)

	require.Len(t, plan.Subjects, 1)
	assert.Equal(t, "Algorithms", plan.Subjects[0].Name)
	assert.Equal(t, 4, plan.Subjects[0].WeeklyHours)
	assert.Equal(t, 1, plan.Subjects[0].CurrentSkips)
	assert.Equal(t, core.DefaultConfig(), plan.MergeConfig(core.Config{}))
}

func TestDecodeExchangeKeepsAbsentConfig(t *testing.T) {
	doc := `{"total_weeks": 20, "subjects": [{"name": "Chemistry", "weekly_hours": 2}]}`
	plan, err := core.DecodeExchange([]byte(doc))
	require.NoError(t, err)

	prev := core.Config{RequiredAttendancePercent: 65, TotalWeeks: 10, SessionHours: 3}
	assert.Equal(t, core.Config{RequiredAttendancePercent: 65, TotalWeeks: 20, SessionHours: 3}, plan.MergeConfig(prev))
	assert.Equal(t, 0, plan.Subjects[0].CurrentSkips)
}

func TestDecodeExchangeEmptySubjects(t *testing.T) {
	plan, err := core.DecodeExchange([]byte(`{"version": 1, "subjects": []}`))
	require.NoError(t, err)
	assert.Empty(t, plan.Subjects)
}

func TestDecodeExchangeErrors(t *testing.T) {
	docs := map[string]string{
		"empty":            ``,
		"not json":         `{"subjects": [`,
		"not an object":    `[1, 2, 3]`,
		"future version":   `{"version": 2, "subjects": []}`,
		"missing subjects": `{"version": 1}`,
		"null subjects":    `{"subjects": null}`,
		"bad name type":    `{"subjects": [{"name": 4, "weekly_hours": 2}]}`,
		"missing name":     `{"subjects": [{"weekly_hours": 2}]}`,
		"empty name":       `{"subjects": [{"name": "", "weekly_hours": 2}]}`,
		"missing hours":    `{"subjects": [{"name": "Chemistry"}]}`,
		"zero hours":       `{"subjects": [{"name": "Chemistry", "weekly_hours": 0}]}`,
		"negative skips":   `{"subjects": [{"name": "Chemistry", "weekly_hours": 2, "current_skips": -1}]}`,
		"too many hours":   `{"subjects": [{"name": "Chemistry", "weekly_hours": 169}]}`,
		"huge hours":       `{"subjects": [{"name": "Chemistry", "weekly_hours": 4611686018427387904}]}`,
		"huge skips":       `{"subjects": [{"name": "Chemistry", "weekly_hours": 2, "current_skips": 2147483648}]}`,
		"late failure":     `{"subjects": [{"name": "Chemistry", "weekly_hours": 2}, {"name": "Biology", "weekly_hours": "x"}]}`,
	}

	for name, doc := range docs {
		plan, err := core.DecodeExchange([]byte(doc))
		assert.Nil(t, plan, name)

		var importErr *core.ImportError
		assert.True(t, errors.As(err, &importErr), name)
	}
}

func TestDecodeExchangeKeepsNameAsTyped(t *testing.T) {
	plan, err := core.DecodeExchange([]byte(`{"subjects": [{"name": " Chemistry ", "weekly_hours": 168}]}`))
	require.NoError(t, err)
	require.Len(t, plan.Subjects, 1)
	assert.Equal(t, " Chemistry ", plan.Subjects[0].Name)
	assert.Equal(t, core.MaxWeeklyHours, plan.Subjects[0].WeeklyHours)

	res := core.Calculate(plan.Subjects[0].WeeklyHours, core.DefaultConfig())
	assert.Equal(t, 2520, res.TotalClasses)
}

func TestWriteExchange(t *testing.T) {
	r := newMockRoster(t)

	buf := &bytes.Buffer{}
	assert.NoError(t, core.WriteExchange(buf, r))

	plan, err := core.ReadExchange(buf)
	assert.NoError(t, err)
	assert.Len(t, plan.Subjects, r.Len())
}

func TestWriteExchangeFailure(t *testing.T) {
	r := newMockRoster(t)

	err := core.WriteExchange(failingWriter{}, r)
	var exportErr *core.ExportError
	assert.True(t, errors.As(err, &exportErr))
	assert.Equal(t, len(mock.MockSubjects), r.Len())
}
