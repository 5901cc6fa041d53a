// Package authz concentra a autorização em uma única tabela papel → ações.
// Ações exclusivas do administrador (gestão de usuários, auditoria) são
// entradas normais da tabela, sem verificação de papel separada.
package authz

import "rh-documentos/internal/models"

type Permissao string

const (
	PermDownload         Permissao = "download"
	PermAddDocumento     Permissao = "add_documento"
	PermAddColaborador   Permissao = "add_colaborador"
	PermRenovarDocumento Permissao = "renovar_documento"
	PermEditDocumento    Permissao = "edit_documento"
	PermDeleteDocumento  Permissao = "delete_documento"
	PermAddUsuario       Permissao = "add_usuario"
	PermVerAuditoria     Permissao = "view_auditoria"
)

// permissões acumulam conforme o papel sobe
var rolePermissions = map[models.UserRole][]Permissao{
	models.RoleVisitante: {
		PermDownload,
	},
	models.RoleOperador: {
		PermDownload,
		PermAddDocumento,
		PermAddColaborador,
		PermRenovarDocumento,
	},
	models.RoleGestor: {
		PermDownload,
		PermAddDocumento,
		PermAddColaborador,
		PermRenovarDocumento,
		PermEditDocumento,
		PermDeleteDocumento,
	},
	models.RoleAdministrador: {
		PermDownload,
		PermAddDocumento,
		PermAddColaborador,
		PermRenovarDocumento,
		PermEditDocumento,
		PermDeleteDocumento,
		PermAddUsuario,
		PermVerAuditoria,
	},
}

// Can responde se o papel pode executar a ação. Papel desconhecido nega tudo.
func Can(role models.UserRole, perm Permissao) bool {
	perms, ok := rolePermissions[role]
	if !ok {
		return false
	}
	for _, p := range perms {
		if p == perm {
			return true
		}
	}
	return false
}
