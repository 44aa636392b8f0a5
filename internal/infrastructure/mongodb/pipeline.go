package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/infrastructure/metrics"
)

// userSummaryProjection is the whitelist of user fields exposed through joins.
var userSummaryProjection = bson.D{
	{Key: "username", Value: 1},
	{Key: "fullName", Value: 1},
	{Key: "avatar", Value: 1},
}

// lookupUser joins the user referenced by localField into as, flattened to a
// single embedded document. Missing users leave as unset.
func lookupUser(localField, as string) []bson.D {
	return []bson.D{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: collUsers},
			{Key: "let", Value: bson.D{{Key: "userId", Value: "$" + localField}}},
			{Key: "pipeline", Value: bson.A{
				bson.D{{Key: "$match", Value: bson.D{{Key: "$expr", Value: bson.D{
					{Key: "$eq", Value: bson.A{"$_id", "$$userId"}},
				}}}}},
				bson.D{{Key: "$project", Value: userSummaryProjection}},
			}},
			{Key: "as", Value: as},
		}}},
		{{Key: "$addFields", Value: bson.D{
			{Key: as, Value: bson.D{{Key: "$arrayElemAt", Value: bson.A{"$" + as, 0}}}},
		}}},
	}
}

// lookupOwner is lookupUser for the common "owner" reference.
func lookupOwner() []bson.D {
	return lookupUser("owner", "ownerInfo")
}

// sortStage orders by the requested field with _id as a stable tiebreaker.
func sortStage(page model.PageRequest) bson.D {
	return bson.D{{Key: "$sort", Value: bson.D{
		{Key: page.SortBy, Value: int(page.SortDir)},
		{Key: "_id", Value: int(page.SortDir)},
	}}}
}

// facetStage splits a sorted stream into one page of items and the total count.
// itemStages run after skip/limit so joins only touch the page.
func facetStage(page model.PageRequest, itemStages ...bson.D) bson.D {
	items := bson.A{
		bson.D{{Key: "$skip", Value: page.Skip()}},
		bson.D{{Key: "$limit", Value: page.Limit}},
	}
	for _, s := range itemStages {
		items = append(items, s)
	}
	return bson.D{{Key: "$facet", Value: bson.D{
		{Key: "items", Value: items},
		{Key: "total", Value: bson.A{bson.D{{Key: "$count", Value: "count"}}}},
	}}}
}

type facetResult[D any] struct {
	Items []*D `bson:"items"`
	Total []struct {
		Count int64 `bson:"count"`
	} `bson:"total"`
}

// aggregatePage runs pipeline followed by sort and facet stages and maps the
// resulting documents with toModel.
func aggregatePage[D any, M any](
	ctx context.Context,
	coll *mongo.Collection,
	pipeline []bson.D,
	page model.PageRequest,
	toModel func(*D) M,
	itemStages ...bson.D,
) (*model.Page[M], error) {
	stages := make(mongo.Pipeline, 0, len(pipeline)+2)
	stages = append(stages, pipeline...)
	stages = append(stages, sortStage(page), facetStage(page, itemStages...))

	observe(metrics.StoreOpAggregate, coll.Name())
	cursor, err := coll.Aggregate(ctx, stages)
	if err != nil {
		return nil, fmt.Errorf("aggregate %s page: %w", coll.Name(), err)
	}
	defer cursor.Close(ctx)

	var results []facetResult[D]
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("decode %s page: %w", coll.Name(), err)
	}

	var (
		items []M
		total int64
	)
	if len(results) > 0 {
		for _, d := range results[0].Items {
			items = append(items, toModel(d))
		}
		if len(results[0].Total) > 0 {
			total = results[0].Total[0].Count
		}
	}

	return model.NewPage(items, total, page), nil
}

// aggregateAll runs pipeline and decodes every document.
func aggregateAll[D any](ctx context.Context, coll *mongo.Collection, pipeline []bson.D) ([]*D, error) {
	observe(metrics.StoreOpAggregate, coll.Name())
	cursor, err := coll.Aggregate(ctx, mongo.Pipeline(pipeline))
	if err != nil {
		return nil, fmt.Errorf("aggregate %s: %w", coll.Name(), err)
	}
	defer cursor.Close(ctx)

	var docs []*D
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", coll.Name(), err)
	}
	return docs, nil
}

func matchStage(filter bson.D) bson.D {
	return bson.D{{Key: "$match", Value: filter}}
}

func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

func observe(operation, collection string) {
	metrics.StoreOperationsTotal.WithLabelValues(operation, collection).Inc()
}
