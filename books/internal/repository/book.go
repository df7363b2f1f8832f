package repository

import (
	"context"
	"database/sql"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Astemirdum/book-tracker/books/internal/errs"
	"github.com/Astemirdum/book-tracker/books/internal/model"
)

var bookColumns = []string{"id", "owner_id", "title", "author", "status", "start_date", "end_date", "created_at"}

// sortColumns is the allow-list for order_by.
var sortColumns = map[string]string{
	"title":      "title",
	"author":     "author",
	"created_at": "created_at",
	"start_date": "start_date",
	"end_date":   "end_date",
}

func (r *repository) CreateBook(ctx context.Context, ownerID int64, req model.BookCreateRequest) (model.Book, error) {
	status := req.Status
	if status == "" {
		status = model.StatusToRead
	}
	q, args, err := qb.Insert(booksTableName).
		Columns("owner_id", "title", "author", "status", "start_date", "end_date").
		Values(ownerID, req.Title, req.Author, status, req.StartDate, req.EndDate).
		Suffix("returning " + strings.Join(bookColumns, ", ")).
		ToSql()
	if err != nil {
		return model.Book{}, err
	}

	var book model.Book
	if err := r.db.GetContext(ctx, &book, q, args...); err != nil {
		r.log.Error("CreateBook", zap.String("q", q), zap.Any("args", args), zap.Error(err))
		return model.Book{}, errors.Wrap(err, "CreateBook")
	}
	return book, nil
}

func (r *repository) GetBook(ctx context.Context, ownerID, id int64) (model.Book, error) {
	q, args, err := qb.Select(bookColumns...).
		From(booksTableName).
		Where(sq.Eq{"id": id, "owner_id": ownerID}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Book{}, err
	}

	var book model.Book
	if err := r.db.GetContext(ctx, &book, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Book{}, errs.ErrNotFound
		}
		return model.Book{}, errors.Wrap(err, "GetBook")
	}
	return book, nil
}

func (r *repository) ListBooks(ctx context.Context, ownerID int64, filter model.BookFilter) ([]model.Book, int, error) {
	countQuery, countArgs, err := countBooksQuery(ownerID, filter).ToSql()
	if err != nil {
		return nil, 0, err
	}
	query, args, err := listBooksQuery(ownerID, filter).ToSql()
	if err != nil {
		return nil, 0, err
	}
	r.log.Debug("ListBooks", zap.String("query", query), zap.Any("args", args))

	var (
		total int
		books []model.Book
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.db.GetContext(gCtx, &total, countQuery, countArgs...)
	})
	g.Go(func() error {
		return r.db.SelectContext(gCtx, &books, query, args...)
	})
	if err := g.Wait(); err != nil {
		return nil, 0, errors.Wrap(err, "ListBooks")
	}
	return books, total, nil
}

func (r *repository) UpdateBook(ctx context.Context, book model.Book) (model.Book, error) {
	q, args, err := qb.Update(booksTableName).
		SetMap(map[string]interface{}{
			"title":      book.Title,
			"author":     book.Author,
			"status":     book.Status,
			"start_date": book.StartDate,
			"end_date":   book.EndDate,
		}).
		Where(sq.Eq{"id": book.ID, "owner_id": book.OwnerID}).
		Suffix("returning " + strings.Join(bookColumns, ", ")).
		ToSql()
	if err != nil {
		return model.Book{}, err
	}

	var updated model.Book
	if err := r.db.GetContext(ctx, &updated, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Book{}, errs.ErrNotFound
		}
		r.log.Error("UpdateBook", zap.String("q", q), zap.Any("args", args), zap.Error(err))
		return model.Book{}, errors.Wrap(err, "UpdateBook")
	}
	return updated, nil
}

func (r *repository) DeleteBook(ctx context.Context, ownerID, id int64) error {
	q, args, err := qb.Delete(booksTableName).
		Where(sq.Eq{"id": id, "owner_id": ownerID}).
		ToSql()
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return errors.Wrap(err, "DeleteBook")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "DeleteBook")
	}
	if n == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func bookPredicates(ownerID int64, filter model.BookFilter) sq.And {
	preds := sq.And{sq.Eq{"owner_id": ownerID}}
	if filter.Status != "" {
		preds = append(preds, sq.Eq{"status": filter.Status})
	}
	if filter.Author != "" {
		preds = append(preds, sq.ILike{"author": containsPattern(filter.Author)})
	}
	if filter.Title != "" {
		preds = append(preds, sq.ILike{"title": containsPattern(filter.Title)})
	}
	return preds
}

func countBooksQuery(ownerID int64, filter model.BookFilter) sq.SelectBuilder {
	return qb.Select("count(*)").
		From(booksTableName).
		Where(bookPredicates(ownerID, filter))
}

// listBooksQuery orders by the requested column with id as tie-break, so
// pages stay disjoint when sort keys repeat.
func listBooksQuery(ownerID int64, filter model.BookFilter) sq.SelectBuilder {
	column, ok := sortColumns[filter.OrderBy]
	if !ok {
		column = model.OrderByCreatedAt
	}
	direction := "desc"
	if filter.Order == model.OrderAsc {
		direction = "asc"
	}

	q := qb.Select(bookColumns...).
		From(booksTableName).
		Where(bookPredicates(ownerID, filter)).
		OrderBy(column+" "+direction, "id "+direction)

	if filter.Size > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		q = q.Limit(uint64(filter.Size)).Offset(uint64((page - 1) * filter.Size))
	}
	return q
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
