// Package repository implements the data access layer for divisions.
//
// Each division persists as one directory under the repository root,
// named by the division's UUID. The repository maps the Division
// aggregate to that directory's resources and back.
//
// # Repository Pattern
//
//   - Constructor function (NewDivisionRepository) accepts the data root
//     and a logger
//   - Init writes the full directory for a new division, including the
//     write-once info.json identity resource
//   - Save rewrites every mutable resource; identity is never rewritten
//   - Load and LoadAll map resources back to aggregates, coercing stored
//     setting values to their catalog types
//
// # Resource Classification
//
// socials.json and audit.json are optional on read: older directories
// may predate them and load with empty links and an empty trail. Every
// other resource is mandatory. During LoadAll a directory missing an
// optional resource is logged and skipped; any other failure aborts the
// scan so a damaged data root is never half-loaded.
//
// # Example Usage
//
//	repo := NewDivisionRepository(cfg.DataDir, logger)
//	divisions, err := repo.LoadAll(ctx)
//	if err != nil {
//	    return err
//	}
package repository
