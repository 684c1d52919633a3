package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/fwojciec/festin"
)

// Compile-time interface verification.
var _ festin.DomainService = (*DomainService)(nil)

// DomainService implements festin.DomainService using SQLite.
type DomainService struct {
	db *DB
}

// NewDomainService creates a new DomainService.
func NewDomainService(db *DB) *DomainService {
	return &DomainService{db: db}
}

// CreateDomain stores a discovered domain. Duplicates are ignored.
func (s *DomainService) CreateDomain(ctx context.Context, domain *festin.Domain) error {
	if domain.RunID == "" || domain.Name == "" {
		return festin.Errorf(festin.EINVALID, "domain requires a run and a name")
	}

	domain.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO domains (run_id, name, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT (run_id, name) DO NOTHING
	`, domain.RunID, domain.Name, domain.CreatedAt.Format(time.RFC3339))

	return err
}

// FindDomains retrieves domains matching the filter in discovery order.
func (s *DomainService) FindDomains(ctx context.Context, filter festin.DomainFilter) ([]*festin.Domain, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT run_id, name, created_at FROM domains WHERE 1=1")
	whereEqual(&query, &args, "run_id", filter.RunID)
	query.WriteString(" ORDER BY rowid")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var domains []*festin.Domain
	for rows.Next() {
		var d festin.Domain
		var createdAt string
		if err := rows.Scan(&d.RunID, &d.Name, &createdAt); err != nil {
			return nil, err
		}
		if d.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
			return nil, err
		}
		domains = append(domains, &d)
	}

	return domains, rows.Err()
}
