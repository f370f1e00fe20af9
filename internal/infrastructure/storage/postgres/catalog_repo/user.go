package catalog_repo

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"

	"stockmaster/internal/domain/users"
	"stockmaster/internal/infrastructure/storage/postgres"
)

const usersTable = "users"

// UserRepo implements users.Repository.
type UserRepo struct {
	*BaseRepo[*users.User]
}

var _ users.Repository = (*UserRepo)(nil)

func NewUserRepo(txm *postgres.TxManager) *UserRepo {
	return &UserRepo{
		BaseRepo: NewBaseRepo(
			txm,
			usersTable,
			postgres.ExtractDBColumns[users.User](),
			[]string{"email", "name"},
			func() *users.User { return &users.User{} },
		),
	}
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	return r.getByField(ctx, "email", email)
}

func (r *UserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.existsBy(ctx, "email", email)
}

// List returns all users ordered by name. The user catalog is small; no
// pagination needed.
func (r *UserRepo) List(ctx context.Context) ([]users.User, error) {
	sql, args, err := r.baseSelect().OrderBy("name ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var items []users.User
	if err := pgxscan.Select(ctx, r.querier(ctx), &items, sql, args...); err != nil {
		return nil, postgres.MapError(fmt.Errorf("list users: %w", err))
	}
	return items, nil
}
