// Package trace reads epidemic simulator trace files frame by frame.
//
// A trace is plain text. The first line holds the simulation parameters,
// followed by one line per gathering point, followed by blocks of one line
// per agent, one block per simulated iteration:
//
//	N DIM ITER GP
//	x y                (GP lines)
//	x y health         (N lines per frame)
//
// # Usage
//
//	r, err := trace.Open("output.sim", trace.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//
//	for {
//	    frame, err := r.Next(ctx)
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	    // Render frame...
//	}
//
// # Termination
//
// Running out of data is not an error. A clean end of file, or a frame block
// cut short by a missing or misshapen line, ends the stream: Next closes the
// underlying file and returns io.EOF from then on. A record that is shaped
// correctly but carries an unknown health code or a non-numeric coordinate
// is surfaced as a *domain.ParseError and also ends the stream.
//
// A Reader is not safe for concurrent use.
package trace
