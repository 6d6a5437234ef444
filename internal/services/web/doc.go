// Package web hosts the browser-facing dilemma survey.
//
// It renders scenario boards and collects participant rankings, delegating
// sessions, scenarios and statistics to the survey API.
package web
