// Package dataset writes labeled captcha corpora to disk.
//
// A run produces one directory per difficulty tier containing the rendered
// images and a labels.json manifest, suitable for feeding OCR training
// pipelines directly:
//
//	out/
//	└── part2/
//	    ├── images/
//	    │   ├── 000001.png
//	    │   └── 000002.png
//	    └── labels.json
//
// Batch generation fans out across a worker pool, but every sample draws
// from its own rng stream derived from the master seed and the sample
// index, so a corpus is bit-reproducible regardless of worker count. An
// optional SQLite index mirrors the manifest for query access on large
// corpora.
package dataset
