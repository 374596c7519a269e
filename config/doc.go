// Package config loads and validates the YAML run configuration that
// drives batch corpus generation, plus the environment-variable settings
// of the preview server.
//
// A run file names an output directory and one block per difficulty
// tier:
//
//	output_dir: data_generated
//	parts:
//	  part2:
//	    num_samples: 1000
//	    width: 160
//	    height: 60
//	    min_length: 3
//	    max_length: 7
//	    font_sizes: [30, 36, 42, 48]
//
// Everything is validated up front so a bad file fails before any image
// work starts.
package config
