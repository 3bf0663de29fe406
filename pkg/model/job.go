package model

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

const DesignDocPrefix = "_design/"

// Names of the built-in reduce functions.
const (
	ReduceMax      = "_max"
	ReduceMin      = "_min"
	ReduceExtremes = "_extremes"
	ReduceSum      = "_sum"
	ReduceCount    = "_count"
)

const (
	DefaultKeyField   = "document_id"
	DefaultValueField = "version"
)

// MapReduceJob describes one map-reduce run: how rows are emitted
// from the source documents, how values sharing a key are folded,
// and the result collection the folded rows replace.
//
// The map step is either a script (MapFn) or a pair of dotted field
// paths (KeyField/ValueField), one emitted row per document that has
// both fields.
type MapReduceJob struct {
	Name       string `mapstructure:"name"`
	MapFn      string `mapstructure:"map"`
	KeyField   string `mapstructure:"key"`
	ValueField string `mapstructure:"value"`
	ReduceFn   string `mapstructure:"reduce"`
	Language   string `mapstructure:"language"`
	Out        string `mapstructure:"out"`
	Engine     string `mapstructure:"engine"`
	Source     string `mapstructure:"source"`
}

func (j MapReduceJob) String() string {
	return fmt.Sprintf("<MapReduceJob name=%q reduce=%q out=%q>", j.Name, j.ReduceFn, j.Out)
}

// Normalize fills the field mapper defaults for jobs without a map
// script and validates that the job can be executed.
func (j *MapReduceJob) Normalize() error {
	if j.Out == "" {
		return fmt.Errorf("job %q: no output collection", j.Name)
	}
	if j.MapFn == "" {
		if j.KeyField == "" {
			j.KeyField = DefaultKeyField
		}
		if j.ValueField == "" {
			j.ValueField = DefaultValueField
		}
	}
	return nil
}

// ResultBucket returns the storage bucket of a result collection.
func ResultBucket(name string) []byte {
	return []byte("results:" + name)
}

// JobsFromDocument extracts the stored map-reduce jobs of a design
// document. Returns nil if the document defines none.
//
//	{
//	  "_id": "_design/versions",
//	  "mapreduce": {
//	    "extremes": {"map": "...", "reduce": "_extremes", "out": "versions"}
//	  }
//	}
func JobsFromDocument(doc *Document) []*MapReduceJob {
	defs, ok := doc.Data["mapreduce"].(map[string]interface{})
	if !ok {
		return nil
	}

	var jobs []*MapReduceJob
	for name, defInterface := range defs {
		def, ok := defInterface.(map[string]interface{})
		if !ok {
			continue
		}

		job := &MapReduceJob{Language: doc.Language()}
		err := mapstructure.Decode(def, job)
		if err != nil {
			continue
		}
		job.Name = name
		if job.Out == "" {
			job.Out = name
		}

		jobs = append(jobs, job)
	}

	return jobs
}
