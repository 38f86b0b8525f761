// Package histapi implements the client for the Ljubljana/Zagreb REST
// history API.
//
// The API serves JSON at
//
//	{base}/{security|index}-history/{MIC}/{ISIN}/{from}/{till}/json
//
// with dates formatted YYYY-MM-DD. The response carries a "history" array;
// only its first element is consumed; the pipeline asks for the most recent
// point in a two-day window, never a back-fill. An empty history means
// nothing traded in the window and is not an error.
package histapi
