package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/invomesh/invoice_marketplace_app/internal/apperrors"
	"github.com/invomesh/invoice_marketplace_app/internal/core/domain"
	portsrepo "github.com/invomesh/invoice_marketplace_app/internal/core/ports/repositories"
	"github.com/invomesh/invoice_marketplace_app/internal/models"
	"github.com/invomesh/invoice_marketplace_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxInvoiceRepository struct {
	db *pgxpool.Pool
}

func newPgxInvoiceRepository(db *pgxpool.Pool) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{db: db}
}

// Ensure PgxInvoiceRepository implements portsrepo.InvoiceRepositoryFacade
var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

const invoiceColumns = `id, invoice_number, amount, due_date, buyer_email, buyer_acknowledged, status, listed_price, token_id, blockchain_tx_hash, pdf_url, created_by, owner, created_at, updated_at`

func scanInvoice(row pgx.Row) (models.Invoice, error) {
	var m models.Invoice
	err := row.Scan(
		&m.ID,
		&m.InvoiceNumber,
		&m.Amount,
		&m.DueDate,
		&m.BuyerEmail,
		&m.BuyerAcknowledged,
		&m.Status,
		&m.ListedPrice,
		&m.TokenID,
		&m.BlockchainTxHash,
		&m.PdfURL,
		&m.CreatedBy,
		&m.Owner,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

func (r *PgxInvoiceRepository) collectInvoices(ctx context.Context, query string, args ...any) ([]domain.Invoice, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoices: %w", err)
	}
	defer rows.Close()

	modelInvoices := []models.Invoice{}
	for rows.Next() {
		m, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice row: %w", err)
		}
		modelInvoices = append(modelInvoices, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating invoice rows: %w", rows.Err())
	}

	return mapping.ToDomainInvoiceSlice(modelInvoices), nil
}

func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	m := mapping.ToModelInvoice(invoice)
	query := `
        INSERT INTO invoices (id, invoice_number, amount, due_date, buyer_email, buyer_acknowledged, status, listed_price, token_id, blockchain_tx_hash, pdf_url, created_by, owner, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
    `
	_, err := r.db.Exec(ctx, query,
		m.ID,
		m.InvoiceNumber,
		m.Amount,
		m.DueDate,
		m.BuyerEmail,
		m.BuyerAcknowledged,
		m.Status,
		m.ListedPrice,
		m.TokenID,
		m.BlockchainTxHash,
		m.PdfURL,
		m.CreatedBy,
		m.Owner,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save invoice: %w", classifyWriteErr(err))
	}
	return nil
}

// UpdateInvoice applies only the set fields of the update and always refreshes
// updated_at. The updated row is returned so callers see the store's view.
func (r *PgxInvoiceRepository) UpdateInvoice(ctx context.Context, invoiceID string, update domain.InvoiceUpdate) (*domain.Invoice, error) {
	setClauses := []string{}
	args := []any{}
	argPos := 1

	addSet := func(column string, value any) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}

	if update.Status != nil {
		addSet("status", string(*update.Status))
	}
	if update.BuyerAcknowledged != nil {
		addSet("buyer_acknowledged", *update.BuyerAcknowledged)
	}
	if update.ListedPrice != nil {
		addSet("listed_price", *update.ListedPrice)
	}
	if update.TokenID != nil {
		addSet("token_id", *update.TokenID)
	}
	if update.BlockchainTxHash != nil {
		addSet("blockchain_tx_hash", *update.BlockchainTxHash)
	}
	if update.Owner != nil {
		addSet("owner", *update.Owner)
	}
	addSet("updated_at", update.UpdatedAt)

	query := fmt.Sprintf(`
        UPDATE invoices
        SET %s
        WHERE id = $%d
        RETURNING %s;
    `, strings.Join(setClauses, ", "), argPos, invoiceColumns)
	args = append(args, invoiceID)

	m, err := scanInvoice(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update invoice %s: %w", invoiceID, classifyWriteErr(err))
	}

	domainInvoice := mapping.ToDomainInvoice(m)
	return &domainInvoice, nil
}

func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE id = $1;
	`
	m, err := scanInvoice(r.db.QueryRow(ctx, query, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find invoice by ID %s: %w", invoiceID, err)
	}

	domainInvoice := mapping.ToDomainInvoice(m)
	return &domainInvoice, nil
}

func (r *PgxInvoiceRepository) ListInvoicesByCreator(ctx context.Context, creatorID string) ([]domain.Invoice, error) {
	query := `
        SELECT ` + invoiceColumns + `
        FROM invoices
        WHERE created_by = $1
        ORDER BY created_at DESC;
    `
	return r.collectInvoices(ctx, query, creatorID)
}

func (r *PgxInvoiceRepository) ListInvoicesByBuyerEmail(ctx context.Context, buyerEmail string, statuses []domain.InvoiceStatus) ([]domain.Invoice, error) {
	if len(statuses) == 0 {
		query := `
            SELECT ` + invoiceColumns + `
            FROM invoices
            WHERE buyer_email = $1
            ORDER BY created_at DESC;
        `
		return r.collectInvoices(ctx, query, buyerEmail)
	}

	statusValues := make([]string, len(statuses))
	for i, s := range statuses {
		statusValues[i] = string(s)
	}
	query := `
        SELECT ` + invoiceColumns + `
        FROM invoices
        WHERE buyer_email = $1 AND status = ANY($2)
        ORDER BY created_at DESC;
    `
	return r.collectInvoices(ctx, query, buyerEmail, statusValues)
}

func (r *PgxInvoiceRepository) ListInvoicesByStatus(ctx context.Context, status domain.InvoiceStatus) ([]domain.Invoice, error) {
	query := `
        SELECT ` + invoiceColumns + `
        FROM invoices
        WHERE status = $1
        ORDER BY created_at DESC;
    `
	return r.collectInvoices(ctx, query, string(status))
}

func (r *PgxInvoiceRepository) ListInvoicesByOwner(ctx context.Context, owner string) ([]domain.Invoice, error) {
	query := `
        SELECT ` + invoiceColumns + `
        FROM invoices
        WHERE owner = $1
        ORDER BY created_at DESC;
    `
	return r.collectInvoices(ctx, query, owner)
}
