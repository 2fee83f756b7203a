package repository

import (
	bCtx "github.com/nifty-xyz/goapi/base/ctx"
	"github.com/nifty-xyz/goapi/domain"
	"github.com/nifty-xyz/goapi/domain/activity"
	"github.com/nifty-xyz/goapi/service/query"
	"go.mongodb.org/mongo-driver/bson"
)

type activityRepoImpl struct {
	q query.Mongo
}

func NewActivityRepo(q query.Mongo) activity.Repo {
	return &activityRepoImpl{q: q}
}

func (r *activityRepoImpl) Insert(ctx bCtx.Ctx, rec *activity.Record) error {
	copy := *rec
	copy.Collection = copy.Collection.ToLower()
	copy.Actor = copy.Actor.ToLower()
	copy.CounterParty = copy.CounterParty.ToLower()
	if err := r.q.Insert(ctx, domain.TableSaleActivities, &copy); err != nil {
		ctx.WithField("err", err).Error("q.Insert failed")
		return err
	}
	return nil
}

func (r *activityRepoImpl) FindAll(ctx bCtx.Ctx, optFns ...activity.FindAllOptionsFunc) ([]activity.Record, error) {
	opts, err := activity.GetFindAllOptions(optFns...)
	if err != nil {
		ctx.WithField("err", err).Error("activity.GetFindAllOptions failed")
		return nil, err
	}

	var (
		offset int    = 0
		limit  int    = 0
		query  bson.M = bson.M{}
	)
	if opts.Offset != nil {
		offset = int(*opts.Offset)
	}
	if opts.Limit != nil {
		limit = int(*opts.Limit)
	}
	if opts.Collection != nil {
		query["collection"] = *opts.Collection
	}
	if opts.TokenId != nil {
		query["tokenId"] = *opts.TokenId
	}
	if opts.Actor != nil {
		query["actor"] = *opts.Actor
	}
	if opts.Type != nil {
		query["type"] = *opts.Type
	}

	records := []activity.Record{}
	if err := r.q.Search(ctx, domain.TableSaleActivities, offset, limit, "-time", query, &records); err != nil {
		ctx.WithField("err", err).Error("q.Search failed")
		return nil, err
	}
	return records, nil
}
