// Package enrollment reads the per-year enrollment ledger, a semicolon
// separated ISO-8859-1 file with one row per enrolled applicant.
package enrollment
