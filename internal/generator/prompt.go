package generator

import (
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/dtroode/neoarcana-server/internal/model"
)

const systemPrompt = "You are a warm, insightful tarot reader. Follow the requested structure exactly and never add commentary outside the markers."

const profileBlock = `{{define "profile"}}Personal Energy:
- Color Connection: {{.Color}}
- Life Path Focus: {{join .Interests ", "}}
{{- with .Numbers}}
- Personal Numbers: favorite {{.Favorite}}, lucky {{.Lucky}}, guidance {{.Guidance}}
{{- end}}
{{- with .Question}}
- Question on their mind: {{.}}
{{- end}}{{end}}`

var prompts = template.Must(template.New("prompts").Funcs(template.FuncMap{
	"join": strings.Join,
}).Parse(profileBlock + `
{{define "daily_single"}}Create a deeply personalized tarot reading for {{.Name}}, who is a {{.ZodiacSign}}, for {{.Date}}.

Card Drawn: {{(index .Cards 0).Name}}
Keywords: {{join (index .Cards 0).Keywords ", "}}

{{template "profile" .}}

Critical Instructions:
1. Respond ENTIRELY in {{.Language}} language
2. Structure the reading with these EXACT markers:

[CARD_READING]
(Card interpretation connecting the day with their personal path)
[/CARD_READING]

[NUMEROLOGY_INSIGHT]
(Brief insight connecting their personal numbers with today's energy)
[/NUMEROLOGY_INSIGHT]

[DAILY_AFFIRMATION]
(Powerful affirmation drawing from their zodiac sign)
[/DAILY_AFFIRMATION]

Maintain a mystical yet practical tone throughout.{{end}}
{{define "three_card_daily"}}Create a deeply personalized three-card tarot reading for {{.Name}}, a {{.ZodiacSign}}, for {{.Date}}.

Cards Drawn:
{{range .Cards}}{{.Position}}: {{.Name}} ({{join .Keywords ", "}})
{{end}}
{{template "profile" .}}

Critical Instructions:
1. Respond ENTIRELY in {{.Language}} language
2. Create a cohesive narrative connecting all three cards
3. Structure with these EXACT markers for each position:

[PAST]
(Interpretation of {{(index .Cards 0).Name}} - how past influences shaped the current journey)
[/PAST]

[PRESENT]
(Interpretation of {{(index .Cards 1).Name}} - the energy surrounding them now)
[/PRESENT]

[FUTURE]
(Interpretation of {{(index .Cards 2).Name}} - where the path is leading)
[/FUTURE]

[INTEGRATION]
(How the three cards weave together into one message)
[/INTEGRATION]{{end}}
{{define "three_card_weekly"}}Create a deeply personalized weekly tarot reading for {{.Name}}, a {{.ZodiacSign}}, for the week starting {{.Date}}.

This is a WEEKLY reading focusing on the seven days ahead.

Cards Drawn:
{{range .Cards}}{{.Position}}: {{.Name}} ({{join .Keywords ", "}})
{{end}}
{{template "profile" .}}

Critical Instructions:
1. Respond ENTIRELY in {{.Language}} language
2. This is a WEEKLY forecast - focus on the 7 days ahead
3. Structure with these EXACT markers:

[WEEKLY_CHALLENGE]
(Interpretation of {{(index .Cards 0).Name}} - the main challenge or lesson this week)
[/WEEKLY_CHALLENGE]

[WEEKLY_OPPORTUNITY]
(Interpretation of {{(index .Cards 1).Name}} - the opportunity or gift available this week)
[/WEEKLY_OPPORTUNITY]

[WEEKLY_OUTCOME]
(Interpretation of {{(index .Cards 2).Name}} - the likely outcome if they navigate the week wisely)
[/WEEKLY_OUTCOME]

[WEEKLY_GUIDANCE]
(Practical advice for the week, weaving in their {{.ZodiacSign}} strengths)
[/WEEKLY_GUIDANCE]

Maintain a mystical yet practical tone, focusing on actionable weekly guidance.{{end}}`))

type drawnCard struct {
	Position string
	Name     string
	Keywords []string
}

type promptData struct {
	Name       string
	ZodiacSign string
	Language   string
	Date       string
	Color      string
	Interests  []string
	Numbers    *model.Numbers
	Question   string
	Cards      []drawnCard
}

func buildPromptData(req model.GenerationRequest, cards []Card) promptData {
	prefs := req.Profile.Preferences
	data := promptData{
		Name:       req.Profile.Name,
		ZodiacSign: req.Profile.ZodiacSign,
		Language:   model.LanguageName(req.Language),
		Date:       req.Now.UTC().Format(time.DateOnly),
		Color:      prefs.Color.Name,
		Interests:  prefs.Interests,
		Question:   req.Inputs.Question,
	}
	if data.Name == "" {
		data.Name = "Seeker"
	}
	if data.ZodiacSign == "" {
		data.ZodiacSign = "seeker of the stars"
	}
	if data.Color == "" {
		data.Color = "Cosmic Purple"
	}
	if len(data.Interests) == 0 {
		data.Interests = []string{"spiritual growth"}
	}
	if prefs.Numbers != (model.Numbers{}) {
		n := prefs.Numbers
		data.Numbers = &n
	}

	positions := Positions(req.ReadingType)
	for i, c := range cards {
		pos := ""
		if i < len(positions) {
			pos = positions[i]
		}
		data.Cards = append(data.Cards, drawnCard{Position: pos, Name: c.Name, Keywords: c.Keywords})
	}

	return data
}

// RenderPrompt renders the user prompt of a reading.
func RenderPrompt(req model.GenerationRequest, cards []Card) (string, error) {
	if len(cards) < req.ReadingType.CardCount() {
		return "", fmt.Errorf("%s needs %d cards, got %d", req.ReadingType, req.ReadingType.CardCount(), len(cards))
	}

	var sb strings.Builder
	if err := prompts.ExecuteTemplate(&sb, string(req.ReadingType), buildPromptData(req, cards)); err != nil {
		return "", fmt.Errorf("failed to render %s prompt: %w", req.ReadingType, err)
	}

	return sb.String(), nil
}
