package mongodb

import (
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/hszk-dev/vidtube/internal/domain/model"
)

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func userDoc(id primitive.ObjectID, username string, history ...primitive.ObjectID) bson.D {
	if history == nil {
		history = []primitive.ObjectID{}
	}
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "username", Value: username},
		{Key: "email", Value: username + "@example.com"},
		{Key: "fullName", Value: "Test User"},
		{Key: "password", Value: "$2a$10$hash"},
		{Key: "avatar", Value: "http://media/avatar.png"},
		{Key: "watchHistory", Value: history},
		{Key: "createdAt", Value: testNow},
		{Key: "updatedAt", Value: testNow},
	}
}

func videoDoc(id, owner primitive.ObjectID, title string, published bool) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "owner", Value: owner},
		{Key: "title", Value: title},
		{Key: "description", Value: "desc"},
		{Key: "videoFile", Value: "http://media/videos/" + id.Hex() + ".mp4"},
		{Key: "thumbnail", Value: "http://media/images/" + id.Hex() + ".png"},
		{Key: "duration", Value: 42.5},
		{Key: "views", Value: int64(3)},
		{Key: "isPublished", Value: published},
		{Key: "createdAt", Value: testNow},
		{Key: "updatedAt", Value: testNow},
	}
}

func withOwnerInfo(doc bson.D, owner primitive.ObjectID, username string) bson.D {
	return append(doc, bson.E{Key: "ownerInfo", Value: bson.D{
		{Key: "_id", Value: owner},
		{Key: "username", Value: username},
		{Key: "fullName", Value: "Owner"},
		{Key: "avatar", Value: "http://media/avatar.png"},
	}})
}

func cursor(ns string, docs ...bson.D) bson.D {
	return mtest.CreateCursorResponse(0, "vidtube."+ns, mtest.FirstBatch, docs...)
}

func emptyCursor(ns string) bson.D {
	return mtest.CreateCursorResponse(0, "vidtube."+ns, mtest.FirstBatch)
}

func facet(total int32, items ...bson.D) bson.D {
	arr := bson.A{}
	for _, it := range items {
		arr = append(arr, it)
	}
	totals := bson.A{}
	if total > 0 {
		totals = append(totals, bson.D{{Key: "count", Value: total}})
	}
	return bson.D{{Key: "items", Value: arr}, {Key: "total", Value: totals}}
}

func duplicateKeyResponse() bson.D {
	return mtest.CreateWriteErrorsResponse(mtest.WriteError{
		Index:   0,
		Code:    11000,
		Message: "E11000 duplicate key error",
	})
}

func modifyResponse(value interface{}) bson.D {
	return mtest.CreateSuccessResponse(bson.E{Key: "value", Value: value})
}

func countResponse(n int32) bson.D {
	return mtest.CreateSuccessResponse(bson.E{Key: "n", Value: n})
}

// sentPipeline returns the stages of the aggregate command the client sent.
func sentPipeline(mt *mtest.T) []bson.Raw {
	mt.Helper()
	evt := mt.GetStartedEvent()
	if evt == nil {
		mt.Fatal("no command was sent")
	}
	if evt.CommandName != "aggregate" {
		mt.Fatalf("command = %q, want aggregate", evt.CommandName)
	}
	return documents(mt, evt.Command.Lookup("pipeline"))
}

// documents decodes an array of embedded documents.
func documents(mt *mtest.T, v bson.RawValue) []bson.Raw {
	mt.Helper()
	arr, ok := v.ArrayOK()
	if !ok {
		mt.Fatalf("value %v is not an array", v)
	}
	vals, err := arr.Values()
	if err != nil {
		mt.Fatalf("decode array: %v", err)
	}
	docs := make([]bson.Raw, 0, len(vals))
	for _, val := range vals {
		docs = append(docs, val.Document())
	}
	return docs
}

// stageValue returns the operand of the first stage using operator op.
func stageValue(mt *mtest.T, stages []bson.Raw, op string) bson.RawValue {
	mt.Helper()
	for _, s := range stages {
		if v, err := s.LookupErr(op); err == nil {
			return v
		}
	}
	mt.Fatalf("pipeline has no %s stage", op)
	return bson.RawValue{}
}

// keys lists the field names of doc in order.
func keys(mt *mtest.T, doc bson.Raw) []string {
	mt.Helper()
	elems, err := doc.Elements()
	if err != nil {
		mt.Fatalf("decode document: %v", err)
	}
	names := make([]string, 0, len(elems))
	for _, e := range elems {
		names = append(names, e.Key())
	}
	return names
}

// assertSortAndPage checks the sort keys and the skip/limit of the facet.
func assertSortAndPage(mt *mtest.T, stages []bson.Raw, field string, dir model.SortDirection, skip, limit int64) []bson.Raw {
	mt.Helper()
	sort := stageValue(mt, stages, "$sort").Document()
	if got, want := keys(mt, sort), []string{field, "_id"}; !slices.Equal(got, want) {
		mt.Errorf("$sort keys = %v, want %v", got, want)
	}
	for _, k := range []string{field, "_id"} {
		if got := sort.Lookup(k).AsInt64(); got != int64(dir) {
			mt.Errorf("$sort %s = %d, want %d", k, got, dir)
		}
	}

	items := documents(mt, stageValue(mt, stages, "$facet").Document().Lookup("items"))
	if len(items) < 2 {
		mt.Fatalf("facet items has %d stages, want skip and limit first", len(items))
	}
	if got := items[0].Lookup("$skip").AsInt64(); got != skip {
		mt.Errorf("$skip = %d, want %d", got, skip)
	}
	if got := items[1].Lookup("$limit").AsInt64(); got != limit {
		mt.Errorf("$limit = %d, want %d", got, limit)
	}
	return items[2:]
}

// assertUserSummaryJoin checks that a user $lookup projects only public fields.
func assertUserSummaryJoin(mt *mtest.T, stages []bson.Raw) {
	mt.Helper()
	lookup := stageValue(mt, stages, "$lookup").Document()
	if got := lookup.Lookup("from").StringValue(); got != collUsers {
		mt.Errorf("$lookup from = %q, want %q", got, collUsers)
	}
	project := stageValue(mt, documents(mt, lookup.Lookup("pipeline")), "$project").Document()
	fields := keys(mt, project)
	for _, secret := range []string{"password", "refreshToken", "email", "watchHistory"} {
		if slices.Contains(fields, secret) {
			mt.Errorf("user join projects %q", secret)
		}
	}
	if want := []string{"username", "fullName", "avatar"}; !slices.Equal(fields, want) {
		mt.Errorf("user join projects %v, want %v", fields, want)
	}
}
