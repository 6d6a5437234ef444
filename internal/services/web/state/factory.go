package state

import (
	"net/http"
	"time"

	"github.com/direwen/dilemma-web/internal/services/web/platform/requestmeta"
	"github.com/direwen/dilemma-web/internal/services/web/platform/sessioncookie"
	"github.com/direwen/dilemma-web/internal/services/web/storage"
)

// Factory builds cookie-backed experiment state for requests.
type Factory struct {
	API          SurveyAPI
	Progress     storage.ProgressStore
	TimerSeconds int
	Policy       requestmeta.SchemePolicy
	Now          func() time.Time
}

// ForRequest builds and loads the experiment for one request. The returned
// experiment is usable even when err reports that stored progress could not
// be read.
func (f Factory) ForRequest(w http.ResponseWriter, r *http.Request) (*Experiment, error) {
	exp := NewExperiment(Options{
		API:          f.API,
		Persisted:    sessioncookie.NewJar(w, r, f.Policy),
		Progress:     f.Progress,
		TimerSeconds: f.TimerSeconds,
		Now:          f.Now,
	})
	if r == nil {
		return exp, nil
	}
	return exp, exp.Load(r.Context())
}
