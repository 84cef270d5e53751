package assistant

import (
	"fmt"
	"sort"
	"strings"

	"klinik-ai/internal/llm"
	"klinik-ai/internal/privacy"
	"klinik-ai/internal/session"
)

const maxHistoryTurns = 10

// roleInstruction selects the scope-of-disclosure block for the acting
// role. The switch enumerates every Role variant.
func roleInstruction(role privacy.Role) string {
	switch role {
	case privacy.RolePatient:
		return `Kamu adalah asisten klinik yang ramah dan membantu pasien.
Jawab hanya tentang data milik pasien yang sedang bertanya: pendaftaran, hasil pemeriksaan, resep, dan jadwal dokter klinik.
Jangan pernah membuka data pasien lain. Gunakan bahasa yang sederhana dan hangat, hindari istilah medis yang rumit tanpa penjelasan.`
	case privacy.RoleDoctor:
		return `Kamu adalah asisten klinik untuk dokter.
Jawab tentang pasien yang ditangani dokter ini, jadwal praktik, pendaftaran, dan hasil pemeriksaan terkait.
Gunakan bahasa profesional dan ringkas; istilah medis boleh dipakai langsung.`
	case privacy.RoleAdmin:
		return `Kamu adalah asisten klinik untuk staf administrasi.
Jawab tentang data operasional: pendaftaran, antrian, jadwal dokter, dan data pasien administratif.
Jangan menyampaikan isi klinis (gejala, diagnosis, resep, catatan pemeriksaan); itu di luar wewenang administrasi.`
	}
	return ""
}

const behaviorRules = `Aturan wajib:
1. Jawab HANYA berdasarkan konteks yang diberikan. Jika konteks tidak memuat jawabannya, katakan bahwa datanya tidak tersedia.
2. Jika informasi dari pengguna belum cukup untuk menjawab, ajukan TEPAT SATU pertanyaan klarifikasi lewat follow_up_question dan set needs_more_info ke true.
3. Jangan pernah mengarang diagnosis, hasil pemeriksaan, atau resep.
4. Jaga privasi: jangan menyebut data pihak lain yang tidak ada dalam konteks.
5. Balas dalam JSON persis dengan bentuk:
{"answer": "...", "needs_more_info": false, "follow_up_question": "", "suggested_follow_ups": ["..."], "topic": "...", "is_topic_changed": false, "sources": ["collection:id"]}
Isi sources hanya dengan tag sumber yang benar-benar kamu pakai.`

// BuildPrompt assembles the full message list for one turn: system
// instructions (role block, identity binding, retained topic, rules,
// numbered context), replayed history, then the current question.
func BuildPrompt(user privacy.UserContext, topic string, sources []Source, history []session.Turn, question string) []llm.Message {
	var sys strings.Builder

	sys.WriteString(roleInstruction(user.Role))
	sys.WriteString("\n\n")

	name := user.Name
	if name == "" {
		name = fmt.Sprintf("pengguna #%d", user.ID)
	}
	fmt.Fprintf(&sys, "Pengguna saat ini adalah %s (%s). Kata \"saya\", \"aku\", atau \"milikku\" dalam pertanyaan merujuk pada %s.\n\n",
		name, user.Role, name)

	if topic != "" {
		fmt.Fprintf(&sys, "Topik percakapan sejauh ini: %s\n\n", topic)
	}

	sys.WriteString(behaviorRules)
	sys.WriteString("\n\n")
	sys.WriteString(renderContext(sources))

	messages := []llm.Message{{Role: "system", Content: sys.String()}}

	turns := history
	if len(turns) > maxHistoryTurns {
		turns = turns[len(turns)-maxHistoryTurns:]
	}
	for _, turn := range turns {
		messages = append(messages, llm.Message{Role: turn.Role, Content: turn.Content})
	}

	messages = append(messages, llm.Message{Role: "user", Content: question})
	return messages
}

// renderContext numbers each source and tags it with its citation ref so
// the model can cite back "collection:id".
func renderContext(sources []Source) string {
	if len(sources) == 0 {
		return "Konteks: tidak ada data yang ditemukan untuk pertanyaan ini."
	}

	var b strings.Builder
	b.WriteString("Konteks:\n")
	for i, s := range sources {
		fmt.Fprintf(&b, "%d. [%s] %s\n", i+1, s.Ref(), s.Snippet)
		if len(s.Metadata) > 0 {
			fmt.Fprintf(&b, "   %s\n", renderFields(s.Metadata))
		}
	}
	return b.String()
}

func renderFields(fields map[string]any) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %v", k, fields[k]))
	}
	return strings.Join(parts, ", ")
}
