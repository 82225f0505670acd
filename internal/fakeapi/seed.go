package fakeapi

// Demo accounts created by Seed.
const (
	DemoProfessorEmail = "professor@example.com"
	DemoAlunoEmail     = "aluno@example.com"
	DemoPassword       = "secret123"
)

// Seed fills the server with a professor, a student and a few posts.
func (s *Server) Seed() error {
	if _, err := s.AddUser("Professora Demo", DemoProfessorEmail, DemoPassword, RoleProfessor); err != nil {
		return err
	}
	if _, err := s.AddUser("Aluno Demo", DemoAlunoEmail, DemoPassword, RoleAluno); err != nil {
		return err
	}
	s.AddPost("Bem-vindos", "Primeiro post da turma. **Boas aulas!**", "Professora Demo")
	s.AddPost("História do Brasil", "Leitura para a próxima semana: capítulos 1 a 3.", "Professora Demo")
	s.AddPost("Álgebra", "Lista de exercícios sobre equações do primeiro grau.", "Professora Demo")
	return nil
}
