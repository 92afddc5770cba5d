// Package quest holds the scripted content of the scavenger hunt: puzzle
// words, secret code variants, narrative replies and the one map coordinate.
// The built-in script can be overridden field by field from a YAML file.
package quest

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
)

// WordTrigger maps one exact puzzle word to the narrative sent to the
// sender's whole team.
type WordTrigger struct {
	Word  string `yaml:"word"`
	Reply string `yaml:"reply"`
}

// HintTrigger is the one puzzle word answered with an image directly to the
// sender instead of a team broadcast.
type HintTrigger struct {
	Word    string `yaml:"word"`
	Image   string `yaml:"image"`
	Caption string `yaml:"caption"`
}

// CodeTrigger describes the secret combination: all textual variants are
// equivalent after case folding and whitespace stripping.
type CodeTrigger struct {
	Variants []string   `yaml:"variants"`
	Reply    string     `yaml:"reply"`
	Location Coordinate `yaml:"location"`
}

// Coordinate is a latitude/longitude pair sent as a map point.
type Coordinate struct {
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
}

// ReviewTexts are the narratives around photo review.
type ReviewTexts struct {
	ApprovedReply   string `yaml:"approved_reply"`
	ApprovedCaption string `yaml:"approved_caption"`
	RejectedReply   string `yaml:"rejected_reply"`
	RejectedCaption string `yaml:"rejected_caption"`
	RebusCaption    string `yaml:"rebus_caption"`
}

// Script is the complete quest content.
type Script struct {
	Words   []WordTrigger `yaml:"words"`
	Hint    HintTrigger   `yaml:"hint"`
	Code    CodeTrigger   `yaml:"code"`
	Review  ReviewTexts   `yaml:"review"`
	Welcome string        `yaml:"welcome"` // must contain one %s for the team code
}

// Default returns the built-in script of the "Освітній детектив ДНЛІТ" quest.
func Default() *Script {
	return &Script{
		Words: []WordTrigger{
			{
				Word: "інститут",
				Reply: "📚 Наступний крок — рушайте до вашої теперішньої <b>Alma Mater</b>. ",
			},
			{
				Word: "казка",
				Reply: "📖 Наступна зупинка — місце, де казки не просто живуть, а зберігаються на сторінках. " +
					"Вирушайте туди, де оживає дитяча уява.",
			},
		},
		Hint: HintTrigger{
			Word:  "міст",
			Image: "media/mist.jpg",
			Caption: "🛤️ Два шляхи перетинаються, як вірші на зображенні. " +
				"Знайдіть місце, де ці шляхи ведуть до нових відкриттів.",
		},
		Code: CodeTrigger{
			Variants: []string{"1е2г3д4б5а6в", "егдбав"},
			Reply: "📍 На карті вказано точку. Знайдіть місце, де зустрічаються дитячі спогади та рух. " +
				"Воно зовсім поряд з тим, звідки все починалося...",
			Location: Coordinate{Latitude: 48.460187, Longitude: 35.062562},
		},
		Review: ReviewTexts{
			ApprovedReply: "🧭 Ваш наступний пункт — <b><i>найдавніший університет нашого міста</i></b>. " +
				"Там ви маєте знайти людину, <b>яка своїм ремеслом дала поштовх до появи перших поселень на території міста Дніпро.</b>",
			ApprovedCaption: "✅ Фото одобрено. Переходьте до наступного кроку.",
			RejectedReply:   "❌ Ваше фото відхилено. Спробуйте ще раз.",
			RejectedCaption: "❌ Фото відхилено.",
			RebusCaption:    "😉 Спробуйте розгадати цей ребус, що є правильним кодом.",
		},
		Welcome: "👋 Вітаємо у захопливому квесті <b>Освітній детектив ДНЛІТ: Таємниці Дніпра</b>! \n" +
			"Ваша команда: <b>%s</b>\n\n" +
			"📌 <b>Як працює бот?</b>\n" +
			"Протягом квесту ви отримуватимете слова, коди чи комбінації. Надсилайте їх боту — " +
			"у разі правильного введення ви отримаєте наступну підказку. Якщо код некоректний — бот повідомить про це.\n\n" +
			"⚠️ <b>УВАГА: Під час повітряної тривоги квест зупиняється!</b> \n" +
			"Команда повинна негайно пройти до найближчого укриття та чекати на відбій тривоги.\n\n" +
			"🛡 <b>Місця укриттів:</b>\n" +
			"• <b>Школа №67</b> - пров. Євгена Коновальця, 6 \n" +
			"• <b>Нац. університет</b> - просп. Дмитра Яворницького, 19\n" +
			"• <b>Дніпровський художній музей</b> - вул. Шевченка, 21\n" +
			"• <b>ВолейКамп</b> - вул. Володимира Вернадського, 6\n" +
			"‼️ У випадку, якщо щось не працює або виникла помилка — звертайтесь до координатора: @TheTimMir",
	}
}

// Load returns the default script, overridden by the YAML file at path when
// path is non-empty. Keys absent from the file keep their built-in values.
func Load(path string) (*Script, error) {
	script := Default()
	if path == "" {
		return script, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script file: %w", err)
	}
	if err := yaml.Unmarshal(raw, script); err != nil {
		return nil, fmt.Errorf("parse script file: %w", err)
	}
	if err := script.validate(); err != nil {
		return nil, fmt.Errorf("invalid script file %s: %w", path, err)
	}
	return script, nil
}

func (s *Script) validate() error {
	if len(s.Code.Variants) == 0 {
		return fmt.Errorf("code needs at least one variant")
	}
	if !strings.Contains(s.Welcome, "%s") {
		return fmt.Errorf("welcome text must contain %%s for the team code")
	}
	for _, w := range s.Words {
		if w.Word == "" {
			return fmt.Errorf("word trigger with empty word")
		}
	}
	return nil
}

// WelcomeFor renders the team briefing for one team code.
func (s *Script) WelcomeFor(teamCode string) string {
	return fmt.Sprintf(s.Welcome, teamCode)
}

// MatchesCode reports whether text is one of the code variants, ignoring case,
// spaces and line breaks.
func (s *Script) MatchesCode(text string) bool {
	normalized := NormalizeCode(text)
	for _, variant := range s.Code.Variants {
		if normalized == NormalizeCode(variant) {
			return true
		}
	}
	return false
}

// NormalizeCode folds case and strips all whitespace from a candidate code.
func NormalizeCode(text string) string {
	text = strings.ToLower(text)
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r':
			return -1
		}
		return r
	}, text)
}
