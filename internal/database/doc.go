// Package database provides the PostgreSQL connection pool.
//
// The pool is long-lived; each sync run acquires a single connection from it
// for the run's duration and releases it on every exit path.
package database
