package langpack

// defaultPacks ships language packs for the forge's core supported
// languages; any other language code falls back to English.
var defaultPacks = []Pack{
	{
		Code: "en",
		Name: "English",
		SectionTitles: []string{
			"Overview", "Background", "Technical Details", "Configuration",
			"Implementation Notes", "Security Considerations", "Next Steps",
		},
		CredentialLabels: map[string]string{
			"api_key":           "API Key",
			"aws_access_key":    "AWS Access Key",
			"jwt_token":         "JWT Token",
			"password":          "Password",
			"db_connection":     "Database Connection",
			"github_token":      "GitHub Token",
			"ssl_certificate":   "SSL Certificate",
		},
		Greeting:          "Hi team,",
		Closing:           "Best regards,",
		BodyTemplate:      "This document covers {topic} for {company}.",
		ConfigSectionName: "Configuration Details",
	},
	{
		Code: "fr",
		Name: "French",
		SectionTitles: []string{
			"Aperçu", "Contexte", "Détails techniques", "Configuration",
			"Notes d'implémentation", "Considérations de sécurité", "Prochaines étapes",
		},
		CredentialLabels: map[string]string{
			"api_key":         "Clé API",
			"aws_access_key":  "Clé d'accès AWS",
			"jwt_token":       "Jeton JWT",
			"password":        "Mot de passe",
			"db_connection":   "Connexion à la base de données",
			"github_token":    "Jeton GitHub",
			"ssl_certificate": "Certificat SSL",
		},
		Greeting:          "Bonjour à l'équipe,",
		Closing:           "Cordialement,",
		BodyTemplate:      "Ce document couvre {topic} pour {company}.",
		ConfigSectionName: "Détails de configuration",
	},
	{
		Code: "es",
		Name: "Spanish",
		SectionTitles: []string{
			"Resumen", "Antecedentes", "Detalles técnicos", "Configuración",
			"Notas de implementación", "Consideraciones de seguridad", "Próximos pasos",
		},
		CredentialLabels: map[string]string{
			"api_key":         "Clave API",
			"aws_access_key":  "Clave de acceso de AWS",
			"jwt_token":       "Token JWT",
			"password":        "Contraseña",
			"db_connection":   "Conexión a la base de datos",
			"github_token":    "Token de GitHub",
			"ssl_certificate": "Certificado SSL",
		},
		Greeting:          "Hola equipo,",
		Closing:           "Saludos cordiales,",
		BodyTemplate:      "Este documento cubre {topic} para {company}.",
		ConfigSectionName: "Detalles de configuración",
	},
	{
		Code: "de",
		Name: "German",
		SectionTitles: []string{
			"Überblick", "Hintergrund", "Technische Details", "Konfiguration",
			"Implementierungshinweise", "Sicherheitsaspekte", "Nächste Schritte",
		},
		CredentialLabels: map[string]string{
			"api_key":         "API-Schlüssel",
			"aws_access_key":  "AWS-Zugriffsschlüssel",
			"jwt_token":       "JWT-Token",
			"password":        "Passwort",
			"db_connection":   "Datenbankverbindung",
			"github_token":    "GitHub-Token",
			"ssl_certificate": "SSL-Zertifikat",
		},
		Greeting:          "Hallo Team,",
		Closing:           "Mit freundlichen Grüßen,",
		BodyTemplate:      "Dieses Dokument behandelt {topic} für {company}.",
		ConfigSectionName: "Konfigurationsdetails",
	},
	{
		Code: "ja",
		Name: "Japanese",
		SectionTitles: []string{
			"概要", "背景", "技術詳細", "設定",
			"実装メモ", "セキュリティ上の考慮事項", "次のステップ",
		},
		CredentialLabels: map[string]string{
			"api_key":         "APIキー",
			"aws_access_key":  "AWSアクセスキー",
			"jwt_token":       "JWTトークン",
			"password":        "パスワード",
			"db_connection":   "データベース接続",
			"github_token":    "GitHubトークン",
			"ssl_certificate": "SSL証明書",
		},
		Greeting:          "チームの皆様、",
		Closing:           "よろしくお願いいたします。",
		BodyTemplate:      "この文書は{company}の{topic}について説明します。",
		ConfigSectionName: "設定の詳細",
	},
}

// defaultCompanies ships a small built-in company/language/region mapping
// for when no external mapping file is supplied.
var defaultCompanies = []Company{
	{Name: "Acme Corp", Language: "en", Country: "United States", Region: "North America"},
	{Name: "Globex Industries", Language: "en", Country: "United Kingdom", Region: "Europe"},
	{Name: "Société Dubois", Language: "fr", Country: "France", Region: "Europe"},
	{Name: "Groupe Lefevre", Language: "fr", Country: "France", Region: "Europe"},
	{Name: "Construcciones Ibérica", Language: "es", Country: "Spain", Region: "Europe"},
	{Name: "Grupo Hernández", Language: "es", Country: "Mexico", Region: "North America"},
	{Name: "Müller Systeme GmbH", Language: "de", Country: "Germany", Region: "Europe"},
	{Name: "Bayern Technik AG", Language: "de", Country: "Germany", Region: "Europe"},
	{Name: "Sakura Technologies", Language: "ja", Country: "Japan", Region: "Asia"},
	{Name: "Tanaka Holdings", Language: "ja", Country: "Japan", Region: "Asia"},
}
