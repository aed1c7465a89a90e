package taskfilter

import (
	"net/url"
	"strconv"

	"github.com/phrazzld/task-tracker/internal/domain"
)

// Query parameter names accepted by the task list endpoint.
const (
	ParamTitleCont  = "titleCont"
	ParamAssigneeID = "assigneeId"
	ParamStatus     = "status"
	ParamLabelID    = "labelId"
)

// ParseQuery reads filter params from a URL query. Missing or empty
// parameters are left unset.
func ParseQuery(q url.Values) (Params, error) {
	var p Params
	if v := q.Get(ParamTitleCont); v != "" {
		p.TitleCont = &v
	}
	if v := q.Get(ParamStatus); v != "" {
		p.Status = &v
	}

	var err error
	if p.AssigneeID, err = parseID(q, ParamAssigneeID); err != nil {
		return Params{}, err
	}
	if p.LabelID, err = parseID(q, ParamLabelID); err != nil {
		return Params{}, err
	}
	return p, nil
}

func parseID(q url.Values, name string) (*int64, error) {
	raw := q.Get(name)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, domain.NewValidationError(name, "must be an integer", domain.ErrInvalidID)
	}
	return &id, nil
}
