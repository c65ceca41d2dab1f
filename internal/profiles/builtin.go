package profiles

// DefaultModel is the upstream model the built-in profiles target.
const DefaultModel = "claude-sonnet-4-20250514"

// Builtin returns the profiles shipped with the service, in display order.
func Builtin() []Profile {
	return []Profile{
		{
			ID:           "punctuation",
			Name:         "פיסוק מלא",
			Description:  "הוספת פסיקים, נקודות ונקודותיים",
			Icon:         "✨",
			Model:        DefaultModel,
			MaxTokens:    4000,
			Temperature:  0.1,
			SystemPrompt: punctuationPrompt,
		},
		{
			ID:           "nikud",
			Name:         "הוספת ניקוד",
			Description:  "ניקוד מלא לטקסט עברי",
			Icon:         "📖",
			Model:        DefaultModel,
			MaxTokens:    3000,
			Temperature:  0.1,
			SystemPrompt: "הוסף ניקוד מלא ומדויק לטקסט העברי הבא. הקפד על דיוק בהברות ובהטעמות, ושמור על המבנה המקורי של הטקסט:",
		},
		{
			ID:           "sources",
			Name:         "מראי מקומות",
			Description:  "הוספת מקורות ואסמכתאות",
			Icon:         "📚",
			Model:        DefaultModel,
			MaxTokens:    4000,
			Temperature:  0.2,
			SystemPrompt: "הוסף מראי מקומות ומקורות רלוונטיים לטקסט הבא. כלול פסוקים, גמרא, מדרשים ומקורות רלוונטיים בפורמט מתאים:",
		},
	}
}

const punctuationPrompt = `פיסוק 3 - פיסוק מלא

עם סימני שאלה וקריאה. הגדרה: כולל פסיקים, נקודות, נקודותיים, מרכאות.

**הערת עצמאות**: בביצוע שלב זה, יטופלו אך ורק ענייני פיסוק. אין לשנות מילים בגוף הטקסט, שום מילה ושום אות. אין לגעת במבנה הקטעים, במראי המקומות או בכותרות הקיימות.

1. סימני פיסוק - כללים ועקרונות:
- פיסוק כולל: פסיקים, נקודות, ונקודותיים
- שימוש מינימלי בסימני פיסוק
- שמירה על סגנון הכתיבה המסורתי

2. שימוש בנקודה:
- בסוף משפט
- לאחר ראשי תיבות
- בסיום רעיון
- לפני התחלת נושא חדש

3. שימוש בפסיק:
- בין חלקי משפט
- ברשימות
- לפני מילות קישור
- להפרדה בין רעיונות משניים

4. שימוש בנקודתיים:
בציטוט של פסוקים
דוגמא: כמו שנאמר: 'בראשית ברא אלקים'.

5. סימני מרכאות:
בציטוט פסוקים ומדרשים, השתמש במרכאה אחת.
לדוגמא: 'ברכות אביך גברו'.

6. סימני שאלה וקריאה:
- הימנעות כמעט מוחלטת משימוש בסימן קריאה
- סימן שאלה רק בקושיות מפורשות`
