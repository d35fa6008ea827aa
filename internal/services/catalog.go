package services

import (
	"strings"

	"github.com/AnshRaj112/mindcare-backend/internal/models"
)

func q(id, text string, required bool) models.Question {
	return models.Question{ID: id, Text: text, Type: models.QuestionText, Required: required}
}

var issues = []models.Issue{
	{
		ID: "anxiety", Name: "Anxiety", Description: "Worry, fear, and nervousness",
		Questions: []models.Question{
			q("1", "How often do you experience anxiety in a typical week? (Please describe in detail)", true),
			q("2", "Do you experience physical symptoms like sweating, rapid heartbeat, or trembling? Please describe what you feel.", true),
			q("3", "Which situations typically trigger your anxiety? Please list them.", true),
			q("4", "How would you rate the intensity of your anxiety when it occurs on a scale of 1-10? Please explain.", true),
			q("5", "Do you avoid certain situations because of anxiety? If yes, which ones?", true),
			q("6", "How does anxiety affect your daily activities? Please describe the impact.", true),
			q("7", "Have you tried any coping strategies before? Please list what you've tried.", false),
			q("8", "How long have you been experiencing anxiety? Please provide details.", true),
			q("9", "Do you have panic attacks? Please describe your experience.", true),
			q("10", "Describe a recent situation where you felt anxious:", false),
		},
	},
	{
		ID: "depression", Name: "Depression", Description: "Sadness, hopelessness, low mood",
		Questions: []models.Question{
			q("1", "How often do you feel sad or down? Please describe your experience.", true),
			q("2", "Have you lost interest in activities you used to enjoy? Please explain.", true),
			q("3", "How would you rate your energy levels? Please describe how you feel.", true),
			q("4", "Do you have trouble sleeping or sleep too much? Please describe your sleep patterns.", true),
			q("5", "How is your appetite? Please describe any changes.", true),
			q("6", "Do you have feelings of worthlessness or guilt? Please describe these feelings.", true),
			q("7", "How difficult is it to concentrate or make decisions? Please explain.", true),
			q("8", "Have you had thoughts of death or suicide? Please share if you feel comfortable.", true),
			q("9", "How long have you been feeling this way? Please provide details.", true),
			q("10", "What do you think might be contributing to these feelings?", false),
		},
	},
	{
		ID: "stress", Name: "Stress", Description: "Overwhelm and pressure",
		Questions: []models.Question{
			q("1", "How stressed do you feel on a typical day? Please describe your stress levels.", true),
			q("2", "What are your main sources of stress? Please list them.", true),
			q("3", "Do you experience physical symptoms of stress? Please describe them.", true),
			q("4", "How well do you currently manage stress? Please explain your methods.", true),
			q("5", "Do you feel overwhelmed by daily responsibilities? Please describe how.", true),
			q("6", "How often do you take time for relaxation? Please describe your routine.", true),
			q("7", "What stress management techniques have you tried? Please list them.", false),
			q("8", "How does stress affect your relationships? Please explain.", true),
			q("9", "Do you use unhealthy coping mechanisms? Please describe them.", true),
			q("10", "Describe your most stressful situation recently:", false),
		},
	},
	{
		ID: "sleep", Name: "Sleep Problems", Description: "Insomnia and sleep quality issues",
		Questions: []models.Question{
			q("1", "How many hours of sleep do you typically get? Please provide details.", true),
			q("2", "How long does it take you to fall asleep? Please describe your experience.", true),
			q("3", "How often do you wake up during the night? Please explain.", true),
			q("4", "How refreshed do you feel when you wake up? Please describe.", true),
			q("5", "Do you have a consistent bedtime routine? Please describe it.", true),
			q("6", "What factors affect your sleep? Please list them.", true),
			q("7", "Do you use electronic devices before bed? Please describe your habits.", true),
			q("8", "How comfortable is your sleep environment? Please describe it.", true),
			q("9", "Do you take naps during the day? Please describe your napping habits.", true),
			q("10", "What sleep aids have you tried? Please list them.", false),
		},
	},
	{
		ID: "addiction", Name: "Addiction", Description: "Substance or behavioral dependencies",
		Questions: []models.Question{
			q("1", "What type of addiction are you struggling with? Please describe.", true),
			q("2", "How often do you engage in this behavior? Please provide details.", true),
			q("3", "How strong are your cravings typically? Please describe them.", true),
			q("4", "Have you tried to quit or reduce this behavior before? Please explain your attempts.", true),
			q("5", "What triggers your addictive behavior? Please describe your triggers.", true),
			q("6", "How does this addiction affect your daily life? Please explain the impact.", true),
			q("7", "Do you have a support system? Please describe who supports you.", true),
			q("8", "How motivated are you to change this behavior? Please explain your motivation level.", true),
			q("9", "Have you experienced withdrawal symptoms? Please describe them.", true),
			q("10", "What would success look like for you?", false),
		},
	},
	{
		ID: "motivation", Name: "Low Motivation", Description: "Lack of drive and energy",
		Questions: []models.Question{
			q("1", "How motivated do you feel on a typical day? Please describe your motivation levels.", true),
			q("2", "In which areas do you lack motivation? Please list them.", true),
			q("3", "Do you have clear goals for yourself? Please describe your goals.", true),
			q("4", "How often do you procrastinate? Please describe your procrastination habits.", true),
			q("5", "What do you think causes your low motivation? Please explain.", true),
			q("6", "How satisfied are you with your current life? Please explain your satisfaction level.", true),
			q("7", "Do you celebrate small wins and achievements? Please describe how.", true),
			q("8", "How supportive is your environment? Please describe your support system.", true),
			q("9", "What activities used to motivate you?", false),
			q("10", "What would help you feel more motivated?", false),
		},
	},
	{
		ID: "relationships", Name: "Relationship Issues", Description: "Interpersonal difficulties",
		Questions: []models.Question{
			q("1", "How satisfied are you with your current relationships? Please explain.", true),
			q("2", "What type of relationship issues are you experiencing? Please describe them.", true),
			q("3", "Do you feel heard and understood by others? Please explain your experience.", true),
			q("4", "How comfortable are you expressing your feelings? Please describe.", true),
			q("5", "Do you have difficulty setting boundaries? Please explain your challenges.", true),
			q("6", "How do you typically handle conflict? Please describe your approach.", true),
			q("7", "Do you feel lonely or isolated? Please describe these feelings.", true),
			q("8", "How supportive do you feel your relationships are? Please explain.", true),
			q("9", "What relationship patterns do you want to change?", false),
			q("10", "What does a healthy relationship look like to you?", false),
		},
	},
}

var modules = []models.Module{
	{ID: "cbt", Title: "CBT Thought Records", Description: "Cognitive Behavioral Therapy techniques with guided prompts", Duration: "15-20 min", Difficulty: "Beginner", Sessions: 12},
	{ID: "mindfulness", Title: "Mindfulness & Breathing", Description: "Mindfulness and relaxation exercises with audio guidance", Duration: "10-30 min", Difficulty: "Beginner", Sessions: 15},
	{ID: "sleep", Title: "Sleep Therapy", Description: "Improve sleep quality with proven techniques and tracking", Duration: "20-25 min", Difficulty: "Intermediate", Sessions: 10},
	{ID: "stress", Title: "Stress Management", Description: "Learn effective coping strategies for daily stress", Duration: "15-20 min", Difficulty: "Beginner", Sessions: 8},
	{ID: "gratitude", Title: "Gratitude Journal", Description: "Daily gratitude practice with streak tracking", Duration: "5-10 min", Difficulty: "Beginner", Sessions: 21},
	{ID: "addiction", Title: "Addiction Support", Description: "Resources and strategies for overcoming addictive behaviors", Duration: "25-30 min", Difficulty: "Advanced", Sessions: 16},
	{ID: "music", Title: "Relaxation Music", Description: "Curated audio library for relaxation and focus", Duration: "Variable", Difficulty: "Beginner", Sessions: 20},
	{ID: "tetris", Title: "Tetris Therapy", Description: "Gamified stress relief and cognitive enhancement", Duration: "10-15 min", Difficulty: "Beginner", Sessions: 12},
	{ID: "art", Title: "Art & Color Therapy", Description: "Creative expression through digital art and coloring", Duration: "20-30 min", Difficulty: "Beginner", Sessions: 10},
	{ID: "exposure", Title: "Exposure Therapy", Description: "Gradual exposure techniques for anxiety and phobias", Duration: "30-45 min", Difficulty: "Advanced", Sessions: 12},
	{ID: "video", Title: "Video Therapy", Description: "Guided video sessions with therapeutic content", Duration: "20-40 min", Difficulty: "Intermediate", Sessions: 16},
	{ID: "act", Title: "Acceptance & Commitment Therapy", Description: "ACT principles for psychological flexibility", Duration: "25-35 min", Difficulty: "Intermediate", Sessions: 14},
}

// recommendationTable is keyed by lowercase issue name.
var recommendationTable = map[string][]string{
	"anxiety":             {"cbt", "mindfulness", "exposure", "music"},
	"depression":          {"cbt", "gratitude", "video", "act"},
	"stress":              {"stress", "mindfulness", "music", "art"},
	"sleep problems":      {"sleep", "mindfulness", "music", "video"},
	"addiction":           {"addiction", "cbt", "mindfulness", "video"},
	"low motivation":      {"gratitude", "cbt", "video", "act"},
	"relationship issues": {"video", "cbt", "act", "art"},
}

var fallbackRecommendations = []string{"cbt", "mindfulness", "video"}

func init() {
	for i := range modules {
		modules[i].Route = "/therapy-modules/" + modules[i].ID
	}
}

// Issues returns the assessment catalog.
func Issues() []models.Issue {
	out := make([]models.Issue, len(issues))
	copy(out, issues)
	return out
}

// FindIssue looks an issue up by id.
func FindIssue(id string) (models.Issue, bool) {
	for _, is := range issues {
		if is.ID == id {
			return is, true
		}
	}
	return models.Issue{}, false
}

// Modules returns the therapy module catalog.
func Modules() []models.Module {
	out := make([]models.Module, len(modules))
	copy(out, modules)
	return out
}

// FindModule looks a module up by id.
func FindModule(id string) (models.Module, bool) {
	for _, m := range modules {
		if m.ID == id {
			return m, true
		}
	}
	return models.Module{}, false
}

// RecommendedModules returns the ordered module ids for an issue name,
// matched case-insensitively, or the fallback list.
func RecommendedModules(issueName string) []string {
	ids, ok := recommendationTable[strings.ToLower(strings.TrimSpace(issueName))]
	if !ok {
		ids = fallbackRecommendations
	}
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}
