package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/tcardoso/deckstudy/internal/logger"
	"github.com/tcardoso/deckstudy/internal/models"
	"github.com/tcardoso/deckstudy/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

type deckRepository struct {
	db *sql.DB
}

// NewDeckRepository creates a new DeckRepository implementation
func NewDeckRepository(db *sql.DB) repository.DeckRepository {
	return &deckRepository{db: db}
}

func (r *deckRepository) Get(ctx context.Context, id int64) (*models.Deck, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("getting deck: id=%d", id)

	var d models.Deck
	var description sql.NullString
	err := r.db.QueryRowContext(ctx, `
SELECT d.id, d.profile_id, d.name, d.description, d.created_at, d.updated_at,
       (SELECT COUNT(*) FROM cards c WHERE c.deck_id = d.id) AS card_count
FROM decks d
WHERE d.id = ?
`, id).Scan(&d.ID, &d.ProfileID, &d.Name, &description, &d.CreatedAt, &d.UpdatedAt, &d.CardCount)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("deck not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get deck: %v", err)
		return nil, err
	}
	if description.Valid {
		d.Description = description.String
	}
	return &d, nil
}

func (r *deckRepository) GetWithCards(ctx context.Context, id int64, profileID int64) (*models.DeckWithCards, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("getting deck with cards: id=%d, profile_id=%d", id, profileID)

	var dwc models.DeckWithCards
	var description sql.NullString
	err := r.db.QueryRowContext(ctx, `
SELECT id, profile_id, name, description, created_at, updated_at
FROM decks
WHERE id = ? AND profile_id = ?
`, id, profileID).Scan(&dwc.ID, &dwc.ProfileID, &dwc.Name, &description, &dwc.CreatedAt, &dwc.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("deck not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get deck: %v", err)
		return nil, err
	}
	if description.Valid {
		dwc.Description = description.String
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT id, deck_id, front, back, created_at, updated_at
FROM cards
WHERE deck_id = ?
ORDER BY id
`, id)
	if err != nil {
		log.Error("failed to query cards: %v", err)
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var c models.Card
		if err := rows.Scan(&c.ID, &c.DeckID, &c.Front, &c.Back, &c.CreatedAt, &c.UpdatedAt); err != nil {
			log.Error("failed to scan card row: %v", err)
			return nil, err
		}
		dwc.Cards = append(dwc.Cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	dwc.CardCount = len(dwc.Cards)
	log.Debug("deck loaded with %d cards", len(dwc.Cards))
	return &dwc, nil
}

func (r *deckRepository) List(ctx context.Context, filter models.DeckFilter) ([]models.Deck, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("listing decks: profile_id=%d, search=%q", filter.ProfileID, filter.Search)

	query := sqlBuilder.
		Select(
			"d.id", "d.profile_id", "d.name", "d.description", "d.created_at", "d.updated_at",
			"(SELECT COUNT(*) FROM cards c WHERE c.deck_id = d.id) AS card_count",
		).
		From("decks d")

	query = applyDeckFilter(query, filter)

	// Safe ORDER BY with validation
	orderBy := "updated_at"
	switch filter.OrderBy {
	case "name", "created_at", "updated_at":
		orderBy = filter.OrderBy
	}
	orderDir := "DESC"
	if filter.OrderDir == "ASC" {
		orderDir = "ASC"
	}
	query = query.OrderBy("d." + orderBy + " " + orderDir)

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query = query.Limit(uint64(limit)).Offset(uint64(offset))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list decks: %v", err)
		return nil, err
	}
	defer rows.Close()

	var decks []models.Deck
	for rows.Next() {
		var d models.Deck
		var description sql.NullString
		if err := rows.Scan(&d.ID, &d.ProfileID, &d.Name, &description, &d.CreatedAt, &d.UpdatedAt, &d.CardCount); err != nil {
			log.Error("failed to scan deck row: %v", err)
			return nil, err
		}
		if description.Valid {
			d.Description = description.String
		}
		decks = append(decks, d)
	}
	log.Debug("found %d decks", len(decks))
	return decks, rows.Err()
}

func (r *deckRepository) Count(ctx context.Context, filter models.DeckFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")

	query := applyDeckFilter(sqlBuilder.Select("COUNT(*)").From("decks d"), filter)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build count query: %v", err)
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		log.Error("failed to count decks: %v", err)
		return 0, err
	}
	return count, nil
}

func applyDeckFilter(query squirrel.SelectBuilder, filter models.DeckFilter) squirrel.SelectBuilder {
	if filter.ProfileID != 0 {
		query = query.Where(squirrel.Eq{"d.profile_id": filter.ProfileID})
	}
	if filter.Search != "" {
		query = query.Where(squirrel.Like{"d.name": "%" + filter.Search + "%"})
	}
	return query
}

func (r *deckRepository) Insert(ctx context.Context, deck models.Deck) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("inserting deck: profile_id=%d, name=%s", deck.ProfileID, deck.Name)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO decks (profile_id, name, description)
VALUES (?, ?, ?)
`, deck.ProfileID, deck.Name, nullString(deck.Description))
	if err != nil {
		log.Error("failed to insert deck: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get deck id: %v", err)
		return 0, err
	}
	log.Debug("deck inserted: id=%d", id)
	return id, nil
}

func (r *deckRepository) Update(ctx context.Context, deck models.Deck) error {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("updating deck: id=%d", deck.ID)

	_, err := r.db.ExecContext(ctx, `
UPDATE decks
SET name = ?, description = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`, deck.Name, nullString(deck.Description), deck.ID)
	if err != nil {
		log.Error("failed to update deck: %v", err)
	}
	return err
}

func (r *deckRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("deleting deck: id=%d", id)

	// Cards go with the deck via ON DELETE CASCADE.
	_, err := r.db.ExecContext(ctx, `DELETE FROM decks WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete deck: %v", err)
	}
	return err
}
