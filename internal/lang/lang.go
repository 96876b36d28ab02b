package lang

import "strings"

// Supported is the set of language codes the AI prompts can target. Anything
// outside this set is coerced to English before a prompt is built.
var Supported = []string{"en", "es", "fr", "de", "it", "pt", "zh", "ja", "ko", "ar"}

// instructions maps a language code to the instruction block prepended to every
// AI prompt. The wording is deliberately forceful; smaller models drift into
// English mid-response without it.
var instructions = map[string]string{
	"en": "RESPOND ONLY IN ENGLISH. DO NOT USE SPANISH OR ANY OTHER LANGUAGE. ALL TEXT MUST BE IN ENGLISH.",
	"es": "Responde ÚNICAMENTE en español. NO uses inglés ni ningún otro idioma.",
	"fr": "Répondez UNIQUEMENT en français. N'utilisez pas l'anglais ou d'autres langues.",
	"de": "Antworten Sie NUR auf Deutsch. Verwenden Sie kein Englisch oder andere Sprachen.",
	"it": "Rispondi SOLO in italiano. Non usare inglese o altre lingue.",
	"pt": "Responda APENAS em português. Não use inglês ou outras línguas.",
	"zh": "只用中文回答。不要使用英文或其他语言。",
	"ja": "日本語のみで回答してください。英語や他の言語を使用しないでください。",
	"ko": "한국어로만 답변해주세요. 영어나 다른 언어를 사용하지 마세요.",
	"ar": "أجب باللغة العربية فقط. لا تستخدم الإنجليزية أو أي لغة أخرى.",
}

// letterInstructions are the letter-generation variants of the instruction
// block. Letters drift into the wrong language more readily than structured
// analysis output, so the wording targets the whole document.
var letterInstructions = map[string]string{
	"en": "WRITE THE ENTIRE LETTER ONLY IN ENGLISH. DO NOT USE SPANISH OR ANY OTHER LANGUAGE. ALL TEXT MUST BE IN ENGLISH.",
	"es": "Escribe TODA la carta ÚNICAMENTE en español. NO uses inglés ni ningún otro idioma.",
	"fr": "Rédigez TOUTE la lettre UNIQUEMENT en français. N'utilisez pas l'anglais ou d'autres langues.",
	"de": "Schreiben Sie den GESAMTEN Brief NUR auf Deutsch. Verwenden Sie kein Englisch oder andere Sprachen.",
	"it": "Scrivi TUTTA la lettera SOLO in italiano. Non usare inglese o altre lingue.",
	"pt": "Escreva TODA a carta APENAS em português. Não use inglês ou outras línguas.",
	"zh": "只用中文写整封信。不要使用英文或其他语言。",
	"ja": "手紙全体を日本語のみで書いてください。英語や他の言語を使用しないでください。",
	"ko": "편지 전체를 한국어로만 써주세요. 영어나 다른 언어를 사용하지 마세요.",
	"ar": "اكتب الرسالة كاملة باللغة العربية فقط. لا تستخدم الإنجليزية أو أي لغة أخرى.",
}

// Normalize coerces arbitrary input to a supported language code, defaulting
// to English.
func Normalize(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	for _, c := range Supported {
		if c == code {
			return c
		}
	}
	return "en"
}

// Instruction returns the language-enforcement block for the given code.
func Instruction(code string) string {
	if text, ok := instructions[Normalize(code)]; ok {
		return text
	}
	return instructions["en"]
}

// LetterInstruction returns the letter-writing enforcement block for the
// given code.
func LetterInstruction(code string) string {
	if text, ok := letterInstructions[Normalize(code)]; ok {
		return text
	}
	return letterInstructions["en"]
}

// RecommendationSet holds the localized advice strings attached to an
// analysis result.
type RecommendationSet struct {
	Standard string
	Urgent   string
	Multiple string
	General  []string
}

var recommendations = map[string]RecommendationSet{
	"en": {
		Standard: "Your lease appears to be fairly standard. Review it carefully and keep a copy for your records.",
		Urgent:   "🚨 URGENT: This lease contains potentially illegal clauses. Consider consulting with a tenant rights organization or legal aid before signing.",
		Multiple: "⚠️ Multiple concerning clauses found. Document everything and consider negotiating with your landlord.",
		General: []string{
			"📋 Keep detailed records of all communications with your landlord",
			"📞 Know your local tenant rights hotline number",
			"💰 Understand your security deposit rights",
			"🏠 Take photos of the property condition before moving in",
		},
	},
	"es": {
		Standard: "Su contrato de arrendamiento parece ser bastante estándar. Revíselo cuidadosamente y guarde una copia para sus registros.",
		Urgent:   "🚨 URGENTE: Este contrato contiene cláusulas potencialmente ilegales. Considere consultar con una organización de derechos de inquilinos o asistencia legal antes de firmar.",
		Multiple: "⚠️ Se encontraron múltiples cláusulas preocupantes. Documente todo y considere negociar con su arrendador.",
		General: []string{
			"📋 Mantenga registros detallados de todas las comunicaciones con su arrendador",
			"📞 Conozca el número de la línea directa de derechos de inquilinos de su localidad",
			"💰 Comprenda sus derechos sobre el depósito de seguridad",
			"🏠 Tome fotos del estado de la propiedad antes de mudarse",
		},
	},
	"fr": {
		Standard: "Votre bail semble être assez standard. Examinez-le attentivement et gardez une copie pour vos dossiers.",
		Urgent:   "🚨 URGENT: Ce bail contient des clauses potentiellement illégales. Envisagez de consulter une organisation de droits des locataires ou une aide juridique avant de signer.",
		Multiple: "⚠️ Plusieurs clauses préoccupantes trouvées. Documentez tout et envisagez de négocier avec votre propriétaire.",
		General: []string{
			"📋 Tenez des registres détaillés de toutes les communications avec votre propriétaire",
			"📞 Connaissez le numéro de la ligne d'assistance des droits des locataires de votre région",
			"💰 Comprenez vos droits concernant le dépôt de garantie",
			"🏠 Prenez des photos de l'état de la propriété avant d'emménager",
		},
	},
	"de": {
		Standard: "Ihr Mietvertrag scheint ziemlich standard zu sein. Prüfen Sie ihn sorgfältig und bewahren Sie eine Kopie für Ihre Unterlagen auf.",
		Urgent:   "🚨 DRINGEND: Dieser Mietvertrag enthält möglicherweise illegale Klauseln. Erwägen Sie, sich vor der Unterzeichnung an eine Mieterrechtsorganisation oder Rechtshilfe zu wenden.",
		Multiple: "⚠️ Mehrere bedenkliche Klauseln gefunden. Dokumentieren Sie alles und erwägen Sie Verhandlungen mit Ihrem Vermieter.",
		General: []string{
			"📋 Führen Sie detaillierte Aufzeichnungen über alle Kommunikationen mit Ihrem Vermieter",
			"📞 Kennen Sie die örtliche Mieterrechts-Hotline-Nummer",
			"💰 Verstehen Sie Ihre Rechte bezüglich der Kaution",
			"🏠 Machen Sie Fotos vom Zustand der Immobilie vor dem Einzug",
		},
	},
}

// Recommendations returns the localized recommendation strings, falling back
// to English for languages without a translated set.
func Recommendations(code string) RecommendationSet {
	if set, ok := recommendations[Normalize(code)]; ok {
		return set
	}
	return recommendations["en"]
}
