// Package datasets loads named graph datasets. A Loader resolves a name
// through the catalog, reads the dataset from the local storage root when it
// is already cached, and otherwise downloads it first; the download happens
// transparently on first use. Two on-disk formats are understood: TUDataset
// flat-text archives (graph classification sets) and LINQS citation network
// archives (cora, citeseer).
package datasets
