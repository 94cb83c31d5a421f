package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

var (
	quizSessionsTable = schema.NewTable("quiz_sessions").
				AddPrimary(&schema.Column{Name: "id", Type: field.TypeInt, Increment: true}).
				AddColumn(&schema.Column{Name: "sequence", Type: field.TypeInt64}).
				AddColumn(&schema.Column{Name: "session_id", Type: field.TypeString, Unique: true}).
				AddColumn(&schema.Column{Name: "category", Type: field.TypeString}).
				AddColumn(&schema.Column{Name: "direction", Type: field.TypeString}).
				AddColumn(&schema.Column{Name: "score", Type: field.TypeInt}).
				AddColumn(&schema.Column{Name: "total", Type: field.TypeInt}).
				AddColumn(&schema.Column{Name: "percentage", Type: field.TypeInt}).
				AddColumn(&schema.Column{Name: "tier", Type: field.TypeString}).
				AddColumn(&schema.Column{Name: "duration_ms", Type: field.TypeInt64}).
				AddColumn(&schema.Column{Name: "started_at", Type: field.TypeTime}).
				AddColumn(&schema.Column{Name: "finished_at", Type: field.TypeTime}).
				AddIndex("quizsession_category", false, []string{"category"})

	quizAnswersTable = schema.NewTable("quiz_answers").
				AddPrimary(&schema.Column{Name: "id", Type: field.TypeInt, Increment: true}).
				AddColumn(&schema.Column{Name: "sequence", Type: field.TypeInt64}).
				AddColumn(&schema.Column{Name: "session_id", Type: field.TypeString}).
				AddColumn(&schema.Column{Name: "glyph", Type: field.TypeString}).
				AddColumn(&schema.Column{Name: "reading", Type: field.TypeString}).
				AddColumn(&schema.Column{Name: "kind", Type: field.TypeString}).
				AddColumn(&schema.Column{Name: "selected", Type: field.TypeString}).
				AddColumn(&schema.Column{Name: "correct", Type: field.TypeBool}).
				AddColumn(&schema.Column{Name: "answered_at", Type: field.TypeTime}).
				AddIndex("quizanswer_session_id", false, []string{"session_id"}).
				AddIndex("quizanswer_glyph", false, []string{"glyph"})

	llmRequestsTable = schema.NewTable("llm_requests").
				AddPrimary(&schema.Column{Name: "id", Type: field.TypeInt, Increment: true}).
				AddColumn(&schema.Column{Name: "sequence", Type: field.TypeInt64}).
				AddColumn(&schema.Column{Name: "provider", Type: field.TypeString}).
				AddColumn(&schema.Column{Name: "model", Type: field.TypeString}).
				AddColumn(&schema.Column{Name: "purpose", Type: field.TypeString}).
				AddColumn(&schema.Column{Name: "input_tokens", Type: field.TypeInt}).
				AddColumn(&schema.Column{Name: "output_tokens", Type: field.TypeInt}).
				AddColumn(&schema.Column{Name: "latency_ms", Type: field.TypeInt64}).
				AddColumn(&schema.Column{Name: "cost_usd", Type: field.TypeFloat64, Default: 0}).
				AddColumn(&schema.Column{Name: "success", Type: field.TypeBool}).
				AddColumn(&schema.Column{Name: "error_message", Type: field.TypeString, Default: ""}).
				AddColumn(&schema.Column{Name: "created_at", Type: field.TypeTime})

	preferencesTable = schema.NewTable("preferences").
				AddPrimary(&schema.Column{Name: "key", Type: field.TypeString}).
				AddColumn(&schema.Column{Name: "value", Type: field.TypeString}).
				AddColumn(&schema.Column{Name: "updated_at", Type: field.TypeTime})

	mnemonicsTable = schema.NewTable("mnemonics").
			AddPrimary(&schema.Column{Name: "glyph", Type: field.TypeString}).
			AddColumn(&schema.Column{Name: "hint", Type: field.TypeString}).
			AddColumn(&schema.Column{Name: "story", Type: field.TypeString}).
			AddColumn(&schema.Column{Name: "model", Type: field.TypeString}).
			AddColumn(&schema.Column{Name: "created_at", Type: field.TypeTime})

	globalSequenceTable = schema.NewTable("global_sequence").
				AddPrimary(&schema.Column{Name: "id", Type: field.TypeInt}).
				AddColumn(&schema.Column{Name: "next_val", Type: field.TypeInt64, Default: 1})

	tables = []*schema.Table{
		quizSessionsTable,
		quizAnswersTable,
		llmRequestsTable,
		preferencesTable,
		mnemonicsTable,
		globalSequenceTable,
	}
)
