// Package store persists download run history in SQLite.
//
// Each Run row records one playlist run (reference, title, counts, error,
// timing); run_tracks rows record the per-track outcomes in playlist
// order. The database uses WAL mode so the web front-end can read history
// while a run is being written.
//
//	s, err := store.Open(ctx, "/data/history.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer s.Close()
//
//	id, err := s.SaveRun(ctx, runID, reference, summary, runErr)
package store
