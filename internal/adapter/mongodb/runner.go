// Package mongodb runs a job on a remote MongoDB deployment via the
// mapReduce command instead of the local engine.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/docfold/docfold/pkg/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type Config struct {
	URL              string
	Database         string
	ConnectTimeout   time.Duration
	OperationTimeout time.Duration
}

type Runner struct {
	client   *mongo.Client
	database string
	timeout  time.Duration
}

// Result mirrors the counts the mapReduce command reports.
type Result struct {
	Collection string
	Input      int
	Emitted    int
	Output     int
}

func Open(cfg Config) (*Runner, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("mongodb url is required")
	}
	if cfg.Database == "" {
		return nil, fmt.Errorf("mongodb database is required")
	}
	if cfg.ConnectTimeout == 0 {
		cfg.ConnectTimeout = 5 * time.Second
	}
	if cfg.OperationTimeout == 0 {
		cfg.OperationTimeout = 30 * time.Second
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URL))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	err = client.Ping(ctx, readpref.Primary())
	if err != nil {
		client.Disconnect(context.Background()) // nolint: errcheck
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Runner{
		client:   client,
		database: cfg.Database,
		timeout:  cfg.OperationTimeout,
	}, nil
}

func (r *Runner) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return r.client.Disconnect(ctx)
}

// Run issues the mapReduce command for the job. The output
// collection is replaced, matching the local engine.
func (r *Runner) Run(ctx context.Context, job *model.MapReduceJob) (*Result, error) {
	err := job.Normalize()
	if err != nil {
		return nil, err
	}
	if job.Source == "" {
		return nil, fmt.Errorf("job %q: no source collection", job.Name)
	}

	mapFn := job.MapFn
	if mapFn == "" {
		mapFn = fmt.Sprintf("function() { emit(this.%s, this.%s); }",
			job.KeyField, job.ValueField)
	}
	reduceFn := job.ReduceFn
	if js, ok := builtinJS[reduceFn]; ok {
		reduceFn = js
	}
	if reduceFn == "" {
		return nil, fmt.Errorf("job %q: mapReduce requires a reduce function", job.Name)
	}

	cmd := bson.D{
		{Key: "mapReduce", Value: job.Source},
		{Key: "map", Value: primitive.JavaScript(mapFn)},
		{Key: "reduce", Value: primitive.JavaScript(reduceFn)},
		{Key: "out", Value: bson.D{{Key: "replace", Value: job.Out}}},
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var resp struct {
		Result string `bson:"result"`
		Counts struct {
			Input  int64 `bson:"input"`
			Emit   int64 `bson:"emit"`
			Output int64 `bson:"output"`
		} `bson:"counts"`
		Ok float64 `bson:"ok"`
	}
	err = r.client.Database(r.database).RunCommand(ctx, cmd).Decode(&resp)
	if err != nil {
		return nil, fmt.Errorf("mapReduce %q failed: %w", job.Name, err)
	}
	if resp.Ok != 1 {
		return nil, fmt.Errorf("mapReduce %q failed: ok=%v", job.Name, resp.Ok)
	}

	return &Result{
		Collection: resp.Result,
		Input:      int(resp.Counts.Input),
		Emitted:    int(resp.Counts.Emit),
		Output:     int(resp.Counts.Output),
	}, nil
}

// builtinJS are the server side renditions of the built-in reduce
// functions. They accept both bare numbers and their own output, so
// the server may re-reduce partial results in any grouping.
var builtinJS = map[string]string{
	model.ReduceMax: `function(key, values) {
		return Math.max.apply(null, values);
	}`,
	model.ReduceMin: `function(key, values) {
		return Math.min.apply(null, values);
	}`,
	model.ReduceExtremes: `function(key, values) {
		var max = -Infinity, min = Infinity;
		values.forEach(function(v) {
			if (typeof v === "number") { v = {max: v, min: v}; }
			if (v.max > max) { max = v.max; }
			if (v.min < min) { min = v.min; }
		});
		return {max: max, min: min};
	}`,
	model.ReduceSum: `function(key, values) {
		var sum = 0;
		values.forEach(function(v) { sum += v; });
		return sum;
	}`,
	// count on the server expects the map step to emit ones,
	// anything else is not safe to re-reduce
	model.ReduceCount: `function(key, values) {
		var n = 0;
		values.forEach(function(v) { n += v; });
		return n;
	}`,
}
