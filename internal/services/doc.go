// Package services implements the admission score queries on top of the
// catalog and enrollment sources, plus the health checks of the API.
//
// AdmissionService joins the two data sources of a year:
//
//	svc := services.NewAdmissionService(store, loader, locator, logger, metrics)
//	res, err := svc.Query(ctx, 2024, "Universidad de Chile", "Medicina")
//
// Errors that stop a whole operation are *errors.AppError values whose
// Message is fit for end users and whose cause chain carries one of the
// sentinels in errors.go (ErrNoCatalog, ErrNoEnrollment, ErrNoMatch,
// ErrSchemaMismatch, ErrReadFailure). Problems with a single program code
// never become errors; they are reported in that code's result.
package services
