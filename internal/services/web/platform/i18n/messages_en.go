package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.English

	message.SetString(lang, "app.name", "Dilemma")
	message.SetString(lang, "meta.description", "A short study of how drivers weigh unavoidable collisions.")
	message.SetString(lang, "title.page", "%s | Dilemma")

	// Landing
	message.SetString(lang, "landing.title", "Welcome")
	message.SetString(lang, "landing.heading", "Every driver makes a split-second call")
	message.SetString(lang, "landing.tagline", "Rank what your car should do in a series of unavoidable collisions. It takes about ten minutes.")
	message.SetString(lang, "landing.start", "Start the experiment")
	message.SetString(lang, "landing.dashboard", "See the results so far")

	// Session expired
	message.SetString(lang, "login.title", "Session expired")
	message.SetString(lang, "login.heading", "Your session has ended")
	message.SetString(lang, "login.body", "Sessions last a few hours. Start again to continue taking part.")
	message.SetString(lang, "login.restart", "Start again")

	// Consent
	message.SetString(lang, "consent.title", "Consent")
	message.SetString(lang, "consent.heading", "Before you begin")
	message.SetString(lang, "consent.body", "Your answers are anonymous. We only record the profile below and how you rank each scenario.")
	message.SetString(lang, "consent.age_range", "Age range")
	message.SetString(lang, "consent.gender", "Gender")
	message.SetString(lang, "consent.country", "Country")
	message.SetString(lang, "consent.occupation", "Occupation")
	message.SetString(lang, "consent.driving_experience", "Driving experience")
	message.SetString(lang, "consent.new_participant", "This is my first time taking part")
	message.SetString(lang, "consent.submit", "I agree, begin")
	message.SetString(lang, "consent.invalid", "Please complete every field before continuing.")
	message.SetString(lang, "consent.age.1", "18-24")
	message.SetString(lang, "consent.age.2", "25-34")
	message.SetString(lang, "consent.age.3", "35-44")
	message.SetString(lang, "consent.age.4", "45-54")
	message.SetString(lang, "consent.age.5", "55-64")
	message.SetString(lang, "consent.age.6", "65 or older")
	message.SetString(lang, "consent.gender.1", "Male")
	message.SetString(lang, "consent.gender.2", "Female")
	message.SetString(lang, "consent.gender.3", "Non-binary")
	message.SetString(lang, "consent.gender.4", "Prefer not to say")
	message.SetString(lang, "consent.experience.1", "Less than 1 year")
	message.SetString(lang, "consent.experience.2", "1 to 5 years")
	message.SetString(lang, "consent.experience.3", "More than 5 years")

	// Guide
	message.SetString(lang, "guide.title", "How it works")
	message.SetString(lang, "guide.heading", "How each scenario works")
	message.SetString(lang, "guide.step_board", "The board shows your car, the road and everyone nearby.")
	message.SetString(lang, "guide.step_zones", "Pick an outcome to see where the car would end up.")
	message.SetString(lang, "guide.step_rank", "Rank all three outcomes from least to most harmful before the timer runs out.")
	message.SetString(lang, "guide.continue", "I'm ready")

	// Experiment
	message.SetString(lang, "experiment.title", "Scenario")
	message.SetString(lang, "experiment.progress", "Scenario %d")
	message.SetString(lang, "experiment.timer", "You have %d seconds.")
	message.SetString(lang, "experiment.rank_heading", "Rank the outcomes, least harmful first")
	message.SetString(lang, "experiment.rank_position", "Choice %d")
	message.SetString(lang, "experiment.preview", "Preview")
	message.SetString(lang, "experiment.submit", "Submit ranking")
	message.SetString(lang, "experiment.outcome.maintain", "Maintain course")
	message.SetString(lang, "experiment.outcome.swerve_left", "Swerve left")
	message.SetString(lang, "experiment.outcome.swerve_right", "Swerve right")
	message.SetString(lang, "experiment.unavailable", "No scenario is available right now.")

	// Feedback
	message.SetString(lang, "feedback.title", "Your results")
	message.SetString(lang, "feedback.heading", "You are %s")
	message.SetString(lang, "feedback.key_trait", "Key trait")
	message.SetString(lang, "feedback.dashboard", "Compare with everyone else")

	// Dashboard
	message.SetString(lang, "dashboard.title", "Results")
	message.SetString(lang, "dashboard.heading", "What participants chose")
	message.SetString(lang, "dashboard.completed_sessions", "Completed sessions")
	message.SetString(lang, "dashboard.countries", "Countries represented")
	message.SetString(lang, "dashboard.least_harmful", "Ranked least harmful")
	message.SetString(lang, "dashboard.tailgater", "Maintain rate with a tailgater")
	message.SetString(lang, "dashboard.tailgater_without", "Maintain rate without a tailgater")
	message.SetString(lang, "dashboard.compliant", "Maintain rate when others obey the rules")
	message.SetString(lang, "dashboard.violation", "Maintain rate when others break the rules")
	message.SetString(lang, "dashboard.decision_time", "Decision time")
	message.SetString(lang, "dashboard.decision.under_2s", "Under 2s")
	message.SetString(lang, "dashboard.decision.2s_4s", "2 to 4s")
	message.SetString(lang, "dashboard.decision.4s_6s", "4 to 6s")
	message.SetString(lang, "dashboard.decision.over_6s", "Over 6s")
	message.SetString(lang, "dashboard.archetypes", "Archetypes")
	message.SetString(lang, "dashboard.unavailable", "Results are not available right now.")

	// Notices
	message.SetString(lang, "notice.session_create_failed", "Failed to Create Session")
	message.SetString(lang, "notice.scenario_load_failed", "Failed to get the scenario")
	message.SetString(lang, "notice.response_submitted", "Response submitted successfully")
	message.SetString(lang, "notice.response_submit_failed", "Failed to submit response")
	message.SetString(lang, "notice.dashboard_loaded", "Dashboard stats fetched successfully")
	message.SetString(lang, "notice.dashboard_load_failed", "Failed to get dashboard stats")
	message.SetString(lang, "notice.session_expired", "Your session expired. Please start again.")
	message.SetString(lang, "notice.experiment_completed", "You have already completed the experiment.")

	// Errors
	message.SetString(lang, "error.page_title_not_found", "Not found")
	message.SetString(lang, "error.page_title_server_error", "Something went wrong")
	message.SetString(lang, "error.title_not_found", "This page does not exist")
	message.SetString(lang, "error.title_server_error", "We hit a problem")
	message.SetString(lang, "error.message_not_found", "Check the address or head back to the start.")
	message.SetString(lang, "error.message_server_error", "Please try again in a moment.")
	message.SetString(lang, "error.action_home", "Back to the start")
	message.SetString(lang, "error.unavailable", "The survey service is unavailable right now.")
	message.SetString(lang, "error.invalid_input", "Please check your answers and try again.")
}
