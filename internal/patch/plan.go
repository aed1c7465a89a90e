package patch

import (
	"context"
	"errors"

	"github.com/phrazzld/task-tracker/internal/domain"
)

// ErrNullRequired is wrapped by the validation error returned when a required field is set to null.
var ErrNullRequired = errors.New("field cannot be null")

// Check validates a candidate value before it is assigned.
type Check[T any] func(T) error

// Resolver turns an external reference into the entity it names.
type Resolver[K, V any] func(ctx context.Context, key K) (V, error)

// Plan collects field assignments and applies them together.
// The first failure recorded wins; once a Plan has failed, later steps are skipped.
type Plan struct {
	steps []func()
	err   error
}

// NewPlan returns an empty plan.
func NewPlan() *Plan {
	return &Plan{}
}

// Err returns the first failure recorded, if any.
func (p *Plan) Err() error {
	return p.err
}

// Fail records err unless an earlier failure is already recorded.
func (p *Plan) Fail(err error) {
	if p.err == nil && err != nil {
		p.err = err
	}
}

// Len returns the number of pending assignments.
func (p *Plan) Len() int {
	return len(p.steps)
}

func (p *Plan) add(step func()) {
	p.steps = append(p.steps, step)
}

// Apply performs every recorded assignment in order. If any step failed,
// Apply returns that failure and performs none of them.
func (p *Plan) Apply() error {
	if p.err != nil {
		return p.err
	}
	for _, step := range p.steps {
		step()
	}
	p.steps = nil
	return nil
}

func nullRequired(field string) error {
	return domain.NewValidationError(field, "cannot be null", ErrNullRequired)
}

// SetRequired plans an assignment to a non-nullable field.
// Absent is a no-op, null is rejected, and a value is checked then assigned.
func SetRequired[T any](p *Plan, field string, opt Optional[T], dst *T, checks ...Check[T]) {
	if p.err != nil || opt.IsAbsent() {
		return
	}
	v, ok := opt.Get()
	if !ok {
		p.Fail(nullRequired(field))
		return
	}
	for _, check := range checks {
		if err := check(v); err != nil {
			p.Fail(err)
			return
		}
	}
	p.add(func() { *dst = v })
}

// SetNullable plans an assignment to a pointer field. Null clears it.
func SetNullable[T any](p *Plan, field string, opt Optional[T], dst **T, checks ...Check[T]) {
	if p.err != nil || opt.IsAbsent() {
		return
	}
	v, ok := opt.Get()
	if !ok {
		p.add(func() { *dst = nil })
		return
	}
	for _, check := range checks {
		if err := check(v); err != nil {
			p.Fail(err)
			return
		}
	}
	p.add(func() { *dst = &v })
}

// SetResolved plans an assignment to a required reference. The value is resolved
// immediately; the assignment itself waits for Apply.
func SetResolved[K, V any](ctx context.Context, p *Plan, field string, opt Optional[K], resolve Resolver[K, V], dst *V) {
	if p.err != nil || opt.IsAbsent() {
		return
	}
	key, ok := opt.Get()
	if !ok {
		p.Fail(nullRequired(field))
		return
	}
	v, err := resolve(ctx, key)
	if err != nil {
		p.Fail(err)
		return
	}
	p.add(func() { *dst = v })
}

// SetNullableResolved plans an assignment to an optional reference. Null clears it
// to the zero value of V.
func SetNullableResolved[K, V any](ctx context.Context, p *Plan, field string, opt Optional[K], resolve Resolver[K, V], dst *V) {
	if p.err != nil || opt.IsAbsent() {
		return
	}
	key, ok := opt.Get()
	if !ok {
		var zero V
		p.add(func() { *dst = zero })
		return
	}
	v, err := resolve(ctx, key)
	if err != nil {
		p.Fail(err)
		return
	}
	p.add(func() { *dst = v })
}

// SetResolvedSet plans a replacement of a collection of references. Null clears
// the collection to empty; a value resolves every key, failing as a whole.
func SetResolvedSet[K any, S any](ctx context.Context, p *Plan, field string, opt Optional[[]K], resolve Resolver[[]K, S], empty func() S, dst *S) {
	if p.err != nil || opt.IsAbsent() {
		return
	}
	keys, ok := opt.Get()
	if !ok {
		p.add(func() { *dst = empty() })
		return
	}
	set, err := resolve(ctx, keys)
	if err != nil {
		p.Fail(err)
		return
	}
	p.add(func() { *dst = set })
}
