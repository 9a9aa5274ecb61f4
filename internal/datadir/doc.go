// Package datadir resolves and manages the dataset storage root. The root is
// picked once per process: the SPEKTRAL_DATASET_FOLDER environment variable
// wins, then the dataset_folder key of ~/.spektral/config.json, then the
// built-in default ~/.spektral/datasets. Resolution never fails: every error
// path lands on the default. The package also handles first-run initialization
// and health checks of the directory tree.
package datadir
