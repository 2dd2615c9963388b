package httpadapter

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/mail"
	"reflect"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"campaign-manager/internal/core/domain"
	"campaign-manager/internal/core/port"
)

const maxBodyBytes = 1 << 20

// maxBudget is the largest value the NUMERIC(12, 2) budget column holds.
var maxBudget = decimal.RequireFromString("9999999999.99")

// amount is a monetary JSON number. Quoted strings are rejected so that
// "100" and 100 are not treated alike.
type amount struct {
	decimal.Decimal
}

func (a *amount) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return &json.UnmarshalTypeError{Value: "string", Type: reflect.TypeOf(float64(0)), Field: "budget"}
	}
	return a.Decimal.UnmarshalJSON(data)
}

const (
	msgRequired        = "Required"
	msgInvalidEmail    = "Invalid email address"
	msgPasswordTooWeak = "Password must be at least 6 characters"
	msgPasswordMissing = "Password is required"
	msgNameMissing     = "Name is required"
	msgCampaignName    = "Campaign name is required"
	msgBudgetPositive  = "Budget must be positive"
	msgBudgetCents     = "Budget must have at most 2 decimal places"
	msgBudgetTooLarge  = "Budget must not exceed 9999999999.99"
	msgInvalidDatetime = "Invalid datetime"
)

// decodeJSON reads the request body into dst. Type mismatches are reported
// as validation errors on the offending field.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	err := dec.Decode(dst)
	if err == nil {
		return nil
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		verr := &domain.ValidationError{}
		verr.Add(typeErr.Field, fmt.Sprintf("Expected %s, received %s", expectedKind(typeErr), typeErr.Value))
		return verr
	}
	return badRequest("Invalid JSON body", err)
}

func expectedKind(e *json.UnmarshalTypeError) string {
	if e.Type == nil {
		return "value"
	}
	switch e.Type.Kind() {
	case reflect.String:
		return "string"
	case reflect.Int, reflect.Int64, reflect.Float64:
		return "number"
	case reflect.Bool:
		return "boolean"
	default:
		return e.Type.String()
	}
}

// registerRequest is the JSON body for POST /auth/register.
type registerRequest struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Name     *string `json:"name"`
}

func (req registerRequest) validate() (port.RegisterReq, error) {
	verr := &domain.ValidationError{}
	checkEmail(verr, req.Email)
	switch {
	case req.Password == nil:
		verr.Add("password", msgRequired)
	case len([]rune(*req.Password)) < 6:
		verr.Add("password", msgPasswordTooWeak)
	}
	switch {
	case req.Name == nil:
		verr.Add("name", msgRequired)
	case *req.Name == "":
		verr.Add("name", msgNameMissing)
	}
	if err := verr.OrNil(); err != nil {
		return port.RegisterReq{}, err
	}
	return port.RegisterReq{Email: *req.Email, Password: *req.Password, Name: *req.Name}, nil
}

// loginRequest is the JSON body for POST /auth/login.
type loginRequest struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

func (req loginRequest) validate() (port.LoginReq, error) {
	verr := &domain.ValidationError{}
	checkEmail(verr, req.Email)
	switch {
	case req.Password == nil:
		verr.Add("password", msgRequired)
	case *req.Password == "":
		verr.Add("password", msgPasswordMissing)
	}
	if err := verr.OrNil(); err != nil {
		return port.LoginReq{}, err
	}
	return port.LoginReq{Email: *req.Email, Password: *req.Password}, nil
}

func checkEmail(verr *domain.ValidationError, email *string) {
	if email == nil {
		verr.Add("email", msgRequired)
		return
	}
	if !validEmail(*email) {
		verr.Add("email", msgInvalidEmail)
	}
}

// validEmail accepts a bare addr-spec whose domain has at least one dot.
func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s || addr.Name != "" {
		return false
	}
	at := strings.LastIndexByte(s, '@')
	domainPart := s[at+1:]
	return strings.Contains(domainPart, ".") &&
		!strings.HasPrefix(domainPart, ".") &&
		!strings.HasSuffix(domainPart, ".")
}

// campaignRequest is the JSON body for POST and PUT /campaigns. Absent
// fields stay nil so the same shape serves partial updates.
type campaignRequest struct {
	Name           *string `json:"name"`
	Description    *string `json:"description"`
	Budget         *amount `json:"budget"`
	StartDate      *string `json:"startDate"`
	EndDate        *string `json:"endDate"`
	Status         *string `json:"status"`
	TargetAudience *string `json:"targetAudience"`
}

// validateCreate enforces the full schema. endDate is deliberately not
// compared with startDate.
func (req campaignRequest) validateCreate() (domain.NewCampaign, error) {
	verr := &domain.ValidationError{}
	out := domain.NewCampaign{
		Description:    req.Description,
		TargetAudience: req.TargetAudience,
		Status:         domain.StatusDraft,
	}

	if req.Name == nil {
		verr.Add("name", msgRequired)
	} else if checkName(verr, *req.Name) {
		out.Name = *req.Name
	}
	if req.Budget == nil {
		verr.Add("budget", msgRequired)
	} else if checkBudget(verr, req.Budget.Decimal) {
		out.Budget = req.Budget.Decimal
	}
	if req.StartDate == nil {
		verr.Add("startDate", msgRequired)
	} else if t, ok := parseDatetime(verr, "startDate", *req.StartDate); ok {
		out.StartDate = t
	}
	if req.EndDate == nil {
		verr.Add("endDate", msgRequired)
	} else if t, ok := parseDatetime(verr, "endDate", *req.EndDate); ok {
		out.EndDate = t
	}
	if req.Status != nil {
		if s, ok := parseStatus(verr, *req.Status); ok {
			out.Status = s
		}
	}

	if err := verr.OrNil(); err != nil {
		return domain.NewCampaign{}, err
	}
	return out, nil
}

// validatePatch checks only the supplied fields.
func (req campaignRequest) validatePatch() (domain.CampaignPatch, error) {
	verr := &domain.ValidationError{}
	out := domain.CampaignPatch{
		Description:    req.Description,
		TargetAudience: req.TargetAudience,
	}

	if req.Name != nil && checkName(verr, *req.Name) {
		out.Name = req.Name
	}
	if req.Budget != nil && checkBudget(verr, req.Budget.Decimal) {
		out.Budget = &req.Budget.Decimal
	}
	if req.StartDate != nil {
		if t, ok := parseDatetime(verr, "startDate", *req.StartDate); ok {
			out.StartDate = &t
		}
	}
	if req.EndDate != nil {
		if t, ok := parseDatetime(verr, "endDate", *req.EndDate); ok {
			out.EndDate = &t
		}
	}
	if req.Status != nil {
		if s, ok := parseStatus(verr, *req.Status); ok {
			out.Status = &s
		}
	}

	if err := verr.OrNil(); err != nil {
		return domain.CampaignPatch{}, err
	}
	return out, nil
}

func checkName(verr *domain.ValidationError, name string) bool {
	if name == "" {
		verr.Add("name", msgCampaignName)
		return false
	}
	return true
}

func checkBudget(verr *domain.ValidationError, budget decimal.Decimal) bool {
	switch {
	case !budget.IsPositive():
		verr.Add("budget", msgBudgetPositive)
	case !budget.Equal(budget.Truncate(2)):
		verr.Add("budget", msgBudgetCents)
	case budget.GreaterThan(maxBudget):
		verr.Add("budget", msgBudgetTooLarge)
	default:
		return true
	}
	return false
}

// parseDatetime accepts RFC 3339 instants in UTC only ("...Z"); numeric
// offsets are rejected.
func parseDatetime(verr *domain.ValidationError, field, s string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil || !strings.HasSuffix(s, "Z") {
		verr.Add(field, msgInvalidDatetime)
		return time.Time{}, false
	}
	return t.UTC(), true
}

func parseStatus(verr *domain.ValidationError, s string) (domain.CampaignStatus, bool) {
	status := domain.CampaignStatus(s)
	if !status.Valid() {
		quoted := make([]string, 0, len(domain.CampaignStatuses))
		for _, v := range domain.CampaignStatuses {
			quoted = append(quoted, "'"+string(v)+"'")
		}
		verr.Add("status", fmt.Sprintf("Invalid enum value. Expected %s, received '%s'", strings.Join(quoted, " | "), s))
		return "", false
	}
	return status, true
}
