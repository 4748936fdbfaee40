package sheets

import (
	"context"
	"time"

	"github.com/alexanderramin/crmsheet/internal/config"
	"github.com/alexanderramin/crmsheet/internal/domain"
	"github.com/alexanderramin/crmsheet/internal/repository"
)

// NewStore builds a repository.Store over the named sheets. Loaded sheets
// are reused for ttl; zero disables the cache.
func NewStore(api ValuesAPI, names config.SheetNames, ttl time.Duration) repository.Store {
	cache := newRowCache(ttl)
	return repository.Store{
		Companies:  companyRepo{t: newTable(api, names.Companies, companyCodec, cache)},
		Contacts:   contactRepo{t: newTable(api, names.Contacts, contactCodec, cache)},
		Activities: activityRepo{t: newTable(api, names.Activities, activityCodec, cache)},
		History: historyRepo{sheets: perKind[domain.HistoryEntry]{
			company: newTable(api, names.CompanyHistory, historyCodec(domain.KindCompany), cache),
			contact: newTable(api, names.ContactHistory, historyCodec(domain.KindContact), cache),
		}},
		Tags: tagRepo{sheets: perKind[domain.Tag]{
			company: newTable(api, names.CompanyTags, tagCodec(domain.KindCompany), cache),
			contact: newTable(api, names.ContactTags, tagCodec(domain.KindContact), cache),
		}},
		TagAssignments: tagAssignmentRepo{sheets: perKind[domain.TagAssignment]{
			company: newTable(api, names.CompanyTagRelations, tagAssignmentCodec(domain.KindCompany), cache),
			contact: newTable(api, names.ContactTagRelations, tagAssignmentCodec(domain.KindContact), cache),
		}},
		Profiles: profileRepo{t: newTable(api, names.UserPreferences, profileCodec, cache)},
	}
}

// Transactor runs use cases directly against the store: the Sheets API
// has no transactions, so a failed multi-write use case can leave its
// earlier writes in place.
type Transactor struct {
	Store repository.Store
}

func (t Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context, s repository.Store) error) error {
	return fn(ctx, t.Store)
}
