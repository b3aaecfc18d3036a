package seed

import (
	"context"
	"database/sql"
	"log"
	"sync/atomic"
	"time"

	"github.com/thuwalaco/thuwala-site/internal/repository"
	"github.com/thuwalaco/thuwala-site/internal/utils"
)

// serviceColumns is the column set the reconciler expects on the
// services table. Older deployments predate the category column, so it
// is added here instead of in a versioned migration.
var serviceColumns = []repository.ColumnDef{
	{Name: "category", Type: "VARCHAR(100) NULL"},
}

// Reconciler brings the database to the canonical baseline: required
// schema present, admin account present, every service categorized,
// catalog rows seeded and expired reset tokens swept. Run is safe to
// call repeatedly; every step tolerates partial prior state. It is not
// mutually exclusive across processes — the unique indexes on the
// identity keys (username, email, title, token) are what prevent
// concurrent cold starts from inserting duplicates, and a duplicate-key
// failure is treated as "already present".
type Reconciler struct {
	Schema     *repository.SchemaRepo
	Users      *repository.UserRepo
	Services   *repository.ServiceRepo
	Portfolio  *repository.PortfolioRepo
	Ads        *repository.AdRepo
	Tokens     *repository.TokenRepo
	BcryptCost int
	Now        func() time.Time // defaults to time.Now UTC

	ran atomic.Bool
}

// Run executes reconciliation once per process. Later calls are no-ops
// so a lazy first-request trigger cannot repeat the work; the gate only
// avoids redundancy, correctness never depends on it. Failures in one
// step are logged and do not abort the remaining steps, and nothing is
// ever reported to the caller: the site must stay servable even with
// partially applied seed data.
func (r *Reconciler) Run(ctx context.Context) {
	if !r.ran.CompareAndSwap(false, true) {
		return
	}
	log.Println("reconcile: starting")

	if err := r.ensureSchema(ctx); err != nil {
		log.Printf("reconcile: schema check failed, continuing degraded: %v", err)
	}
	if err := r.ensureAdmin(ctx); err != nil {
		log.Printf("reconcile: ensure admin failed: %v", err)
	}
	if err := r.backfillCategories(ctx); err != nil {
		log.Printf("reconcile: category backfill failed: %v", err)
	}
	if err := r.seedServices(ctx); err != nil {
		log.Printf("reconcile: service seeding failed: %v", err)
	}
	if err := r.verifyServiceCount(ctx); err != nil {
		log.Printf("reconcile: service count check failed: %v", err)
	}
	if err := r.seedPortfolio(ctx); err != nil {
		log.Printf("reconcile: portfolio seeding failed: %v", err)
	}
	if err := r.seedAds(ctx); err != nil {
		log.Printf("reconcile: advertisement seeding failed: %v", err)
	}
	if err := r.sweepTokens(ctx); err != nil {
		log.Printf("reconcile: token sweep failed: %v", err)
	}

	log.Println("reconcile: done")
}

func (r *Reconciler) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now().UTC()
}

func (r *Reconciler) ensureSchema(ctx context.Context) error {
	added, err := r.Schema.EnsureColumns(ctx, "services", serviceColumns)
	for _, col := range added {
		log.Printf("reconcile: added column services.%s", col)
	}
	return err
}

// ensureAdmin is an insert-if-absent keyed by username. It never
// updates an existing row, so a rotated admin password survives
// redeployments.
func (r *Reconciler) ensureAdmin(ctx context.Context) error {
	_, err := r.Users.GetByUsername(ctx, AdminUsername)
	if err == nil {
		return nil
	}
	if err != sql.ErrNoRows {
		return err
	}
	hash, err := utils.HashPassword(AdminDefaultPassword, r.BcryptCost)
	if err != nil {
		return err
	}
	_, err = r.Users.CreateWithHash(ctx, AdminUsername, AdminEmail, hash)
	if err == repository.ErrUsernameExists || err == repository.ErrEmailExists {
		// Lost the race against another cold-start worker. Fine.
		return nil
	}
	if err == nil {
		log.Printf("reconcile: created admin user %q with default credentials", AdminUsername)
	}
	return err
}

func (r *Reconciler) backfillCategories(ctx context.Context) error {
	missing, err := r.Services.ListWithoutCategory(ctx)
	if err != nil {
		return err
	}
	if len(missing) == 0 {
		return nil
	}
	log.Printf("reconcile: %d services without category", len(missing))
	for _, s := range missing {
		cat := Classify(s.Title)
		if err := r.Services.UpdateCategory(ctx, s.ID, cat); err != nil {
			return err
		}
		log.Printf("reconcile: classified %q as %s", s.Title, cat)
	}
	return nil
}

// seedServices inserts catalog entries whose title is not present yet.
// Existing rows are never updated: seeding must not clobber admin
// edits.
func (r *Reconciler) seedServices(ctx context.Context) error {
	existing, err := r.Services.Titles(ctx)
	if err != nil {
		return err
	}
	added := 0
	for _, entry := range Services {
		if existing[entry.Title] {
			continue
		}
		s := entry
		if err := r.Services.Create(ctx, &s); err != nil {
			if err == repository.ErrTitleExists {
				continue // raced with another worker, already there
			}
			return err
		}
		added++
	}
	if added > 0 {
		log.Printf("reconcile: added %d catalog services", added)
	}
	return nil
}

func (r *Reconciler) verifyServiceCount(ctx context.Context) error {
	total, err := r.Services.Count(ctx)
	if err != nil {
		return err
	}
	if total < ExpectedServiceCount {
		log.Printf("reconcile: warning: %d services present, expected %d", total, ExpectedServiceCount)
	}
	return nil
}

// seedPortfolio seeds the sample set only into a fully empty table.
// The coarser table-emptiness key is deliberate: a manual delete of a
// single item is an admin decision, not drift to repair.
func (r *Reconciler) seedPortfolio(ctx context.Context) error {
	n, err := r.Portfolio.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	for _, entry := range PortfolioItems {
		p := entry
		if err := r.Portfolio.Create(ctx, &p); err != nil {
			return err
		}
	}
	log.Printf("reconcile: seeded %d portfolio items", len(PortfolioItems))
	return nil
}

// seedAds mirrors seedPortfolio and assigns sequential display orders
// starting at 1.
func (r *Reconciler) seedAds(ctx context.Context) error {
	n, err := r.Ads.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	for i, entry := range Advertisements {
		a := entry
		a.DisplayOrder = i + 1
		if err := r.Ads.Create(ctx, &a); err != nil {
			return err
		}
	}
	log.Printf("reconcile: seeded %d advertisements", len(Advertisements))
	return nil
}

func (r *Reconciler) sweepTokens(ctx context.Context) error {
	n, err := r.Tokens.DeleteExpired(ctx, r.now())
	if err != nil {
		return err
	}
	if n > 0 {
		log.Printf("reconcile: swept %d expired reset tokens", n)
	}
	return nil
}
