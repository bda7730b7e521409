package otel

import "time"

// FetchEvents records catalog requests. It satisfies catalog.Observer.
type FetchEvents struct {
	Log *Logger
}

// PageFetched emits fetch.complete or fetch.error for a page.
func (f FetchEvents) PageFetched(ref string, items int, dur time.Duration, err error) {
	ev := Event{Level: LevelInfo, Kind: KindFetchComplete, Comp: "catalog", Ref: ref, Count: items, Dur: dur}
	if err != nil {
		ev.Level = LevelError
		ev.Kind = KindFetchError
		ev.Err = err.Error()
	}
	f.Log.Emit(ev)
}

// DetailFetched emits only failures; successes are summarized by the page event.
func (f FetchEvents) DetailFetched(url string, dur time.Duration, err error) {
	if err == nil {
		return
	}
	f.Log.Emit(Event{Level: LevelWarn, Kind: KindDetailError, Comp: "catalog", Ref: url, Dur: dur, Err: err.Error()})
}
