package tickets

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"storeops/infrastructure/attachment"
	"storeops/infrastructure/audit"
	"storeops/infrastructure/sqlite"
	"storeops/models"
	"storeops/workflow"
)

// CreateTicket inserts a new Pending ticket at the head of the collection.
// The id, status and created_at stamps are assigned here; callers only
// supply the validated payload.
func CreateTicket(ctx context.Context, db *sqlite.DB, auditSvc *audit.Service, session models.Session, input TicketInput) (models.Ticket, error) {
	if input.Details == nil {
		return models.Ticket{}, fmt.Errorf("ticket details are required")
	}

	ticket := models.Ticket{
		ID:           uuid.NewString(),
		SessionToken: session.Token,
		TemplateName: input.TemplateName,
		StoreCode:    session.StoreCode,
		EmployeeID:   session.EmployeeID,
		Description:  input.Description,
		Status:       workflow.StatusPending,
		CreatedAt:    time.Now().UTC(),
	}
	input.Details.Apply(&ticket)

	err := db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(&ticket).Exec(ctx); err != nil {
			return err
		}
		for i, img := range input.Images {
			ref, err := attachment.Resolve(ctx, tx, img.Blob, img.MIMEType, img.FileName)
			if err != nil {
				return err
			}
			link := models.TicketImage{TicketID: ticket.ID, Ref: ref, Position: i}
			if _, err := tx.NewInsert().Model(&link).Exec(ctx); err != nil {
				return err
			}
		}
		if auditSvc != nil {
			if err := auditSvc.Write(ctx, tx, session.Token, "ticket.submit", "tickets", ticket.ID, nil, ticket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return models.Ticket{}, err
	}
	return ticket, nil
}

// ListTickets returns the rows a tab shows, most recently submitted first.
func ListTickets(ctx context.Context, db *sqlite.DB, filter ListFilter) ([]models.Ticket, error) {
	list := make([]models.Ticket, 0)
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		q := tx.NewSelect().Model(&list)
		if filter.SessionToken != "" {
			q = q.Where("session_token = ?", filter.SessionToken)
		}
		if filter.PendingOnly {
			q = q.Where("status = ?", workflow.StatusPending)
		}
		// rowid breaks ties between same-second submissions, preserving
		// prepend order.
		return q.OrderExpr("created_at DESC, rowid DESC").Scan(ctx)
	})
	return list, err
}

// LoadTicket returns one ticket and its attachment references in upload
// order.
func LoadTicket(ctx context.Context, db *sqlite.DB, id string) (models.Ticket, []string, error) {
	var ticket models.Ticket
	var refs []string
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		if err := tx.NewSelect().Model(&ticket).Where("id = ?", id).Limit(1).Scan(ctx); err != nil {
			return err
		}
		return tx.NewRaw(`SELECT ref FROM ticket_images WHERE ticket_id = ? ORDER BY position`, id).Scan(ctx, &refs)
	})
	if err != nil {
		return models.Ticket{}, nil, err
	}
	return ticket, refs, nil
}

// DecideTicket applies an approve/reject decision to exactly the matching
// Pending ticket. Decided tickets are terminal, so a second decision on the
// same id mutates nothing and reports the conflict.
func DecideTicket(ctx context.Context, db *sqlite.DB, auditSvc *audit.Service, sessionToken, id, newStatus, comment string) error {
	if newStatus != workflow.StatusApproved && newStatus != workflow.StatusRejected {
		return fmt.Errorf("invalid decision status: %s", newStatus)
	}

	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		var before models.Ticket
		if err := tx.NewSelect().Model(&before).Where("id = ?", id).Limit(1).Scan(ctx); err != nil {
			return err
		}
		if !workflow.CanTransition(before.Status, newStatus) {
			return fmt.Errorf("ticket is already %s", before.Status)
		}

		now := time.Now().UTC()
		res, err := tx.NewUpdate().
			Model((*models.Ticket)(nil)).
			Set("status = ?", newStatus).
			Set("decision_comment = ?", comment).
			Set("decided_at = ?", now).
			Where("id = ?", id).
			Where("status = ?", workflow.StatusPending).
			Exec(ctx)
		if err != nil {
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected != 1 {
			return fmt.Errorf("ticket %s was not updated", id)
		}

		if auditSvc != nil {
			after := before
			after.Status = newStatus
			after.DecisionComment = comment
			after.DecidedAt = &now
			action := "ticket.approve"
			if newStatus == workflow.StatusRejected {
				action = "ticket.reject"
			}
			if err := auditSvc.Write(ctx, tx, sessionToken, action, "tickets", id, before, after); err != nil {
				return err
			}
		}
		return nil
	})
}

// BulkApprove approves every Pending ticket in ids and reports how many
// rows changed. Tickets outside the set are untouched.
func BulkApprove(ctx context.Context, db *sqlite.DB, auditSvc *audit.Service, sessionToken string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	var approved int64
	err := db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		now := time.Now().UTC()
		res, err := tx.NewUpdate().
			Model((*models.Ticket)(nil)).
			Set("status = ?", workflow.StatusApproved).
			Set("decided_at = ?", now).
			Where("id IN (?)", bun.In(ids)).
			Where("status = ?", workflow.StatusPending).
			Exec(ctx)
		if err != nil {
			return err
		}
		approved, err = res.RowsAffected()
		if err != nil {
			return err
		}
		if auditSvc != nil && approved > 0 {
			payload := map[string]any{"ids": ids, "approved": approved}
			if err := auditSvc.Write(ctx, tx, sessionToken, "ticket.bulk_approve", "tickets", "bulk", nil, payload); err != nil {
				return err
			}
		}
		return nil
	})
	return approved, err
}
