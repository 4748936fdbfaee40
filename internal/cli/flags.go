package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/crmsheet/internal/domain"
	"github.com/alexanderramin/crmsheet/internal/timeline"
	"github.com/spf13/pflag"
)

// kindValue is a --kind flag restricted to the entity kinds.
type kindValue domain.EntityKind

var _ pflag.Value = (*kindValue)(nil)

func (v *kindValue) String() string { return string(*v) }
func (v *kindValue) Type() string   { return "kind" }

func (v *kindValue) Set(s string) error {
	k := domain.EntityKind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return fmt.Errorf("must be company or contact")
	}
	*v = kindValue(k)
	return nil
}

// activityTypeValue accepts the activity types in any case.
type activityTypeValue domain.ActivityType

var _ pflag.Value = (*activityTypeValue)(nil)

func (v *activityTypeValue) String() string { return string(*v) }
func (v *activityTypeValue) Type() string   { return "type" }

func (v *activityTypeValue) Set(s string) error {
	t := domain.ActivityType(strings.ToUpper(strings.TrimSpace(s)))
	if !domain.ValidActivityTypes[t] {
		return fmt.Errorf("must be one of email, phone, meeting, task")
	}
	*v = activityTypeValue(t)
	return nil
}

type activityStatusValue domain.ActivityStatus

var _ pflag.Value = (*activityStatusValue)(nil)

func (v *activityStatusValue) String() string { return string(*v) }
func (v *activityStatusValue) Type() string   { return "status" }

func (v *activityStatusValue) Set(s string) error {
	st := domain.ActivityStatus(strings.ToLower(strings.TrimSpace(s)))
	if !domain.ValidActivityStatuses[st] {
		return fmt.Errorf("must be one of planned, completed, cancelled")
	}
	*v = activityStatusValue(st)
	return nil
}

type scopeValue timeline.Scope

var _ pflag.Value = (*scopeValue)(nil)

func (v *scopeValue) String() string { return string(*v) }
func (v *scopeValue) Type() string   { return "scope" }

func (v *scopeValue) Set(s string) error {
	sc, err := timeline.ParseScope(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return err
	}
	*v = scopeValue(sc)
	return nil
}

// entityFlags are the --company/--contact pair of commands that act on one
// entity.
type entityFlags struct {
	company string
	contact string
}

func (f *entityFlags) register(fs *pflag.FlagSet, verb string) {
	fs.StringVar(&f.company, "company", "", fmt.Sprintf("Company to %s (id, id prefix or name)", verb))
	fs.StringVar(&f.contact, "contact", "", fmt.Sprintf("Contact to %s (id, id prefix or name)", verb))
}

func (f *entityFlags) empty() bool {
	return f.company == "" && f.contact == ""
}
