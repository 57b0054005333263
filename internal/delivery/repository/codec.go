// Package repository provides persistence implementations for deliveries.
// Every store enforces that each active slot is held by at most one delivery.
package repository

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/allisson/deliveryqueue/internal/delivery/domain"
	apperrors "github.com/allisson/deliveryqueue/internal/errors"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func encodeItems(items []domain.Item) ([]byte, error) {
	if items == nil {
		items = []domain.Item{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to encode delivery items")
	}
	return data, nil
}

func decodeItems(data []byte) ([]domain.Item, error) {
	items := []domain.Item{}
	if len(data) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, apperrors.Wrap(err, "failed to decode delivery items")
	}
	return items, nil
}

// buildListQuery appends WHERE, ORDER BY and LIMIT/OFFSET clauses for filter.
// placeholder returns the bind marker for the n-th argument (1-based).
func buildListQuery(
	base string,
	filter domain.ListFilter,
	placeholder func(n int) string,
	ownerArg func() (any, error),
) (string, []any, error) {
	var conditions []string
	var args []any

	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		conditions = append(conditions, "status = "+placeholder(len(args)))
	}
	if filter.OwnerUserID != nil {
		owner, err := ownerArg()
		if err != nil {
			return "", nil, err
		}
		args = append(args, owner)
		conditions = append(conditions, "owner_user_id = "+placeholder(len(args)))
	}

	var sb strings.Builder
	sb.WriteString(base)
	if len(conditions) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(conditions, " AND "))
	}

	if filter.SortRecent {
		sb.WriteString(" ORDER BY created_at DESC, id DESC")
	} else {
		sb.WriteString(" ORDER BY created_at ASC, id ASC")
	}

	if filter.Limit > 0 {
		args = append(args, filter.Limit, filter.Offset)
		fmt.Fprintf(&sb, " LIMIT %s OFFSET %s", placeholder(len(args)-1), placeholder(len(args)))
	}

	return sb.String(), args, nil
}

func postgresPlaceholder(n int) string {
	return fmt.Sprintf("$%d", n)
}

func mysqlPlaceholder(int) string {
	return "?"
}
