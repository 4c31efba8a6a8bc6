package postgres

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"batibill/internal/core/apperror"
	"batibill/internal/core/id"
	"batibill/internal/domain/catalogs/catalogitem"
	"batibill/internal/domain/catalogs/client"
	"batibill/internal/domain/catalogs/site"
)

// psql is the statement builder with PostgreSQL placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// catalogBase implements the CRUD shared by all catalog tables.
// Every query filters on tenant_id; soft deletes hide rows from reads
// without touching referencing documents.
type catalogBase[T any] struct {
	source QuerierSource
	table  string
	entity string
	cols   []string
}

func newCatalogBase[T any](source QuerierSource, table, entity string) catalogBase[T] {
	return catalogBase[T]{
		source: source,
		table:  table,
		entity: entity,
		cols:   ExtractDBColumns[T](),
	}
}

func (b *catalogBase[T]) create(ctx context.Context, e any) error {
	query, args, err := psql.Insert(b.table).SetMap(StructToMap(e)).ToSql()
	if err != nil {
		return apperror.NewInternal(err)
	}
	if _, err := b.source.GetQuerier(ctx).Exec(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return apperror.NewDuplicate(b.entity, "code", "").WithCause(err)
		}
		return apperror.NewInternal(err)
	}
	return nil
}

// update writes all columns with an optimistic-lock check on version.
func (b *catalogBase[T]) update(ctx context.Context, e any, entityID id.ID, tenantID id.ID, version int) error {
	setMap := StructToMap(e)
	delete(setMap, "id")
	delete(setMap, "tenant_id")
	delete(setMap, "created_at")
	setMap["version"] = version + 1

	query, args, err := psql.Update(b.table).
		SetMap(setMap).
		Where(sq.Eq{"id": entityID, "tenant_id": tenantID, "version": version}).
		ToSql()
	if err != nil {
		return apperror.NewInternal(err)
	}

	tag, err := b.source.GetQuerier(ctx).Exec(ctx, query, args...)
	if err != nil {
		return apperror.NewInternal(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewConcurrentModification(b.entity, entityID)
	}
	return nil
}

func (b *catalogBase[T]) getByID(ctx context.Context, tenantID, entityID id.ID) (*T, error) {
	query, args, err := psql.Select(b.cols...).
		From(b.table).
		Where(sq.Eq{"id": entityID, "tenant_id": tenantID, "deletion_mark": false}).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	var e T
	if err := pgxscan.Get(ctx, b.source.GetQuerier(ctx), &e, query, args...); err != nil {
		return nil, mapScanError(err, b.entity, entityID)
	}
	return &e, nil
}

func (b *catalogBase[T]) list(ctx context.Context, tenantID id.ID, extra sq.Sqlizer, orderBy string) ([]T, error) {
	q := psql.Select(b.cols...).
		From(b.table).
		Where(sq.Eq{"tenant_id": tenantID, "deletion_mark": false})
	if extra != nil {
		q = q.Where(extra)
	}
	if orderBy != "" {
		q = q.OrderBy(orderBy)
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	var out []T
	if err := pgxscan.Select(ctx, b.source.GetQuerier(ctx), &out, query, args...); err != nil {
		return nil, apperror.NewInternal(err)
	}
	return out, nil
}

func (b *catalogBase[T]) softDelete(ctx context.Context, tenantID, entityID id.ID) error {
	query, args, err := psql.Update(b.table).
		Set("deletion_mark", true).
		Where(sq.Eq{"id": entityID, "tenant_id": tenantID}).
		ToSql()
	if err != nil {
		return apperror.NewInternal(err)
	}

	tag, err := b.source.GetQuerier(ctx).Exec(ctx, query, args...)
	if err != nil {
		return apperror.NewInternal(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound(b.entity, entityID)
	}
	return nil
}

// --- catalog items ---

var _ catalogitem.Repository = (*CatalogItemRepo)(nil)

// CatalogItemRepo persists catalog items in cat_catalog_items.
type CatalogItemRepo struct {
	catalogBase[catalogitem.Item]
}

func NewCatalogItemRepo(source QuerierSource) *CatalogItemRepo {
	return &CatalogItemRepo{newCatalogBase[catalogitem.Item](source, "cat_catalog_items", "catalog item")}
}

func (r *CatalogItemRepo) Create(ctx context.Context, item *catalogitem.Item) error {
	return r.create(ctx, item)
}

func (r *CatalogItemRepo) Update(ctx context.Context, item *catalogitem.Item) error {
	return r.update(ctx, item, item.ID, item.TenantID, item.Version)
}

func (r *CatalogItemRepo) GetByID(ctx context.Context, tenantID, itemID id.ID) (*catalogitem.Item, error) {
	return r.getByID(ctx, tenantID, itemID)
}

func (r *CatalogItemRepo) GetByCode(ctx context.Context, tenantID id.ID, code string) (*catalogitem.Item, error) {
	query, args, err := psql.Select(r.cols...).
		From(r.table).
		Where(sq.Eq{"tenant_id": tenantID, "code": code, "deletion_mark": false}).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	var item catalogitem.Item
	if err := pgxscan.Get(ctx, r.source.GetQuerier(ctx), &item, query, args...); err != nil {
		return nil, mapScanError(err, r.entity, code)
	}
	return &item, nil
}

func (r *CatalogItemRepo) List(ctx context.Context, tenantID id.ID, activeOnly bool) ([]catalogitem.Item, error) {
	var extra sq.Sqlizer
	if activeOnly {
		extra = sq.Eq{"is_active": true}
	}
	return r.list(ctx, tenantID, extra, "code")
}

func (r *CatalogItemRepo) SoftDelete(ctx context.Context, tenantID, itemID id.ID) error {
	return r.softDelete(ctx, tenantID, itemID)
}

// --- clients ---

var _ client.Repository = (*ClientRepo)(nil)

// ClientRepo persists clients in cat_clients.
type ClientRepo struct {
	catalogBase[client.Client]
}

func NewClientRepo(source QuerierSource) *ClientRepo {
	return &ClientRepo{newCatalogBase[client.Client](source, "cat_clients", "client")}
}

func (r *ClientRepo) Create(ctx context.Context, c *client.Client) error {
	return r.create(ctx, c)
}

func (r *ClientRepo) Update(ctx context.Context, c *client.Client) error {
	return r.update(ctx, c, c.ID, c.TenantID, c.Version)
}

func (r *ClientRepo) GetByID(ctx context.Context, tenantID, clientID id.ID) (*client.Client, error) {
	return r.getByID(ctx, tenantID, clientID)
}

func (r *ClientRepo) List(ctx context.Context, tenantID id.ID, activeOnly bool) ([]client.Client, error) {
	var extra sq.Sqlizer
	if activeOnly {
		extra = sq.Eq{"is_active": true}
	}
	return r.list(ctx, tenantID, extra, "name")
}

func (r *ClientRepo) SoftDelete(ctx context.Context, tenantID, clientID id.ID) error {
	return r.softDelete(ctx, tenantID, clientID)
}

// --- sites ---

var _ site.Repository = (*SiteRepo)(nil)

// SiteRepo persists construction sites in cat_sites.
type SiteRepo struct {
	catalogBase[site.Site]
}

func NewSiteRepo(source QuerierSource) *SiteRepo {
	return &SiteRepo{newCatalogBase[site.Site](source, "cat_sites", "site")}
}

func (r *SiteRepo) Create(ctx context.Context, s *site.Site) error {
	return r.create(ctx, s)
}

func (r *SiteRepo) Update(ctx context.Context, s *site.Site) error {
	return r.update(ctx, s, s.ID, s.TenantID, s.Version)
}

func (r *SiteRepo) GetByID(ctx context.Context, tenantID, siteID id.ID) (*site.Site, error) {
	return r.getByID(ctx, tenantID, siteID)
}

func (r *SiteRepo) List(ctx context.Context, tenantID id.ID, status site.Status) ([]site.Site, error) {
	var extra sq.Sqlizer
	if status != "" {
		extra = sq.Eq{"status": status}
	}
	return r.list(ctx, tenantID, extra, "name")
}

func (r *SiteRepo) SoftDelete(ctx context.Context, tenantID, siteID id.ID) error {
	return r.softDelete(ctx, tenantID, siteID)
}
