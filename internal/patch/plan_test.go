package patch

import (
	"context"
	"errors"
	"testing"

	"github.com/phrazzld/task-tracker/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errUnknown = errors.New("unknown reference")

type target struct {
	Name     string
	Note     *string
	Status   string
	Owner    *int64
	Tags     map[int64]bool
	Modified int
}

func resolveStatus(_ context.Context, slug string) (string, error) {
	if slug == "missing" {
		return "", errUnknown
	}
	return "status:" + slug, nil
}

func resolveOwner(_ context.Context, id int64) (*int64, error) {
	if id < 0 {
		return nil, errUnknown
	}
	return &id, nil
}

func resolveTags(_ context.Context, ids []int64) (map[int64]bool, error) {
	out := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if id == 99 {
			return nil, errUnknown
		}
		out[id] = true
	}
	return out, nil
}

func emptyTags() map[int64]bool { return map[int64]bool{} }

func notBlank(s string) error {
	if s == "" {
		return domain.NewValidationError("title", "must not be blank", nil)
	}
	return nil
}

func baseTarget() target {
	note := "original note"
	owner := int64(1)
	return target{
		Name:   "original",
		Note:   &note,
		Status: "status:draft",
		Owner:  &owner,
		Tags:   map[int64]bool{5: true},
	}
}

func TestPlan_AbsentFieldsLeaveTargetUnchanged(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	got := baseTarget()
	want := baseTarget()

	p := NewPlan()
	SetRequired(p, "title", Absent[string](), &got.Name)
	SetNullable(p, "content", Absent[string](), &got.Note)
	SetResolved(ctx, p, "status", Absent[string](), resolveStatus, &got.Status)
	SetNullableResolved(ctx, p, "assignee_id", Absent[int64](), resolveOwner, &got.Owner)
	SetResolvedSet(ctx, p, "taskLabelIds", Absent[[]int64](), resolveTags, emptyTags, &got.Tags)

	require.NoError(t, p.Apply())
	assert.Equal(t, 0, p.Len())
	assert.Equal(t, want, got)
}

func TestPlan_ValuesAreAssigned(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	got := baseTarget()

	p := NewPlan()
	SetRequired(p, "title", Value("renamed"), &got.Name, notBlank)
	SetNullable(p, "content", Value("new note"), &got.Note)
	SetResolved(ctx, p, "status", Value("published"), resolveStatus, &got.Status)
	SetNullableResolved(ctx, p, "assignee_id", Value(int64(4)), resolveOwner, &got.Owner)
	SetResolvedSet(ctx, p, "taskLabelIds", Value([]int64{1, 2}), resolveTags, emptyTags, &got.Tags)

	require.NoError(t, p.Apply())
	assert.Equal(t, "renamed", got.Name)
	require.NotNil(t, got.Note)
	assert.Equal(t, "new note", *got.Note)
	assert.Equal(t, "status:published", got.Status)
	require.NotNil(t, got.Owner)
	assert.Equal(t, int64(4), *got.Owner)
	assert.Equal(t, map[int64]bool{1: true, 2: true}, got.Tags)
}

func TestPlan_NullClearsNullableFields(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	got := baseTarget()

	p := NewPlan()
	SetNullable(p, "content", Null[string](), &got.Note)
	SetNullableResolved(ctx, p, "assignee_id", Null[int64](), resolveOwner, &got.Owner)
	SetResolvedSet(ctx, p, "taskLabelIds", Null[[]int64](), resolveTags, emptyTags, &got.Tags)

	require.NoError(t, p.Apply())
	assert.Nil(t, got.Note)
	assert.Nil(t, got.Owner)
	assert.NotNil(t, got.Tags)
	assert.Empty(t, got.Tags)
}

func TestPlan_FailureMutatesNothing(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tests := []struct {
		name    string
		plan    func(p *Plan, tg *target)
		wantErr func(t *testing.T, err error)
	}{
		{
			name: "null required field",
			plan: func(p *Plan, tg *target) {
				SetNullable(p, "content", Null[string](), &tg.Note)
				SetRequired(p, "title", Null[string](), &tg.Name)
			},
			wantErr: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrNullRequired)
				assert.True(t, domain.IsValidationError(err))
				var ve *domain.ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, "title", ve.Field)
			},
		},
		{
			name: "null required reference",
			plan: func(p *Plan, tg *target) {
				SetRequired(p, "title", Value("renamed"), &tg.Name)
				SetResolved(ctx, p, "status", Null[string](), resolveStatus, &tg.Status)
			},
			wantErr: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrNullRequired)
			},
		},
		{
			name: "check rejects value",
			plan: func(p *Plan, tg *target) {
				SetNullable(p, "content", Value("changed"), &tg.Note)
				SetRequired(p, "title", Value(""), &tg.Name, notBlank)
			},
			wantErr: func(t *testing.T, err error) {
				assert.True(t, domain.IsValidationError(err))
			},
		},
		{
			name: "unresolvable reference after earlier steps",
			plan: func(p *Plan, tg *target) {
				SetRequired(p, "title", Value("renamed"), &tg.Name)
				SetResolved(ctx, p, "status", Value("published"), resolveStatus, &tg.Status)
				SetNullableResolved(ctx, p, "assignee_id", Value(int64(-1)), resolveOwner, &tg.Owner)
			},
			wantErr: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, errUnknown)
			},
		},
		{
			name: "one unknown id in a set",
			plan: func(p *Plan, tg *target) {
				SetRequired(p, "title", Value("renamed"), &tg.Name)
				SetResolvedSet(ctx, p, "taskLabelIds", Value([]int64{1, 99}), resolveTags, emptyTags, &tg.Tags)
			},
			wantErr: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, errUnknown)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := baseTarget()
			p := NewPlan()
			tt.plan(p, &got)

			err := p.Apply()
			require.Error(t, err)
			tt.wantErr(t, err)
			assert.Equal(t, baseTarget(), got)
		})
	}
}

func TestPlan_FirstFailureWins(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	got := baseTarget()

	p := NewPlan()
	SetRequired(p, "title", Null[string](), &got.Name)
	SetResolved(ctx, p, "status", Value("missing"), resolveStatus, &got.Status)

	err := p.Apply()
	assert.ErrorIs(t, err, ErrNullRequired)
	assert.NotErrorIs(t, err, errUnknown)
	assert.Equal(t, err, p.Err())
}

func TestPlan_SkipsResolutionAfterFailure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	got := baseTarget()
	calls := 0
	counting := func(ctx context.Context, slug string) (string, error) {
		calls++
		return resolveStatus(ctx, slug)
	}

	p := NewPlan()
	p.Fail(errUnknown)
	SetResolved(ctx, p, "status", Value("published"), counting, &got.Status)

	assert.ErrorIs(t, p.Apply(), errUnknown)
	assert.Zero(t, calls)
}
