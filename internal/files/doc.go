// Package files knows where the admission data lives on disk.
//
// Each admission year has its own directory under a data root:
//
//	<root>/<year>/Libro_CódigosADM<year>_ArchivoMatricula.xlsx  academic offer catalog
//	<root>/<year>/ArchivoMat_Adm<year>.csv                      enrollment ledger
//
// Locator builds those paths, checks whether they exist and discovers which
// years are available:
//
//	loc := files.NewLocator("datos")
//	if loc.Exists(loc.CatalogPath(2024)) {
//	    // read it
//	}
//	years, err := loc.Years() // e.g. [2024 2023 2019]
package files
