package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/tomaskoller/inkwell/internal/common"
	"github.com/tomaskoller/inkwell/internal/postservice"
	"github.com/tomaskoller/inkwell/internal/userservice"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// repl runs the interactive surface. It is deliberately thin view glue: all
// state lives in the two stores, every command re-reads from them, and the
// only logic here is input handling and the admin/ownership gate the stores
// leave to their callers.
func (app *application) repl(ctx context.Context) error {
	fmt.Fprintln(app.out, "inkwell — type 'help' for commands")

	for {
		fmt.Fprintf(app.out, "inkwell%s> ", app.promptStatus())
		if !app.in.Scan() {
			return app.in.Err()
		}

		parts := strings.Fields(app.in.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			return nil
		}

		if err := app.dispatch(ctx, cmd, args); err != nil {
			var substrateErr *common.SubstrateError
			if errors.As(err, &substrateErr) {
				// the store is no longer trustworthy; bail out
				return err
			}
			fmt.Fprintf(app.out, "error: %v\n", err)
		}
	}
}

func (app *application) promptStatus() string {
	current := app.session.Current()
	if current == nil {
		return ""
	}
	if app.session.IsAdmin() {
		return " [" + current.Name + ", admin]"
	}
	return " [" + current.Name + "]"
}

func (app *application) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "help":
		app.printHelp()
	case "posts":
		return app.listPublished(ctx, strings.Join(args, " "))
	case "sort":
		return app.setSort(args)
	case "read":
		if len(args) != 1 {
			return errors.New("usage: read <id>")
		}
		return app.readPost(ctx, args[0])
	case "login":
		return app.login(ctx)
	case "register":
		return app.register(ctx)
	case "logout":
		return app.logout(ctx)
	case "whoami":
		app.whoami()
	case "mine":
		return app.listMine(ctx)
	case "new":
		return app.newPost(ctx)
	case "edit":
		if len(args) != 1 {
			return errors.New("usage: edit <id>")
		}
		return app.editPost(ctx, args[0])
	case "publish", "unpublish":
		if len(args) != 1 {
			return fmt.Errorf("usage: %s <id>", cmd)
		}
		return app.setPublished(ctx, args[0], cmd == "publish")
	case "delete":
		if len(args) != 1 {
			return errors.New("usage: delete <id>")
		}
		return app.deletePost(ctx, args[0])
	case "all":
		return app.listAll(ctx, strings.Join(args, " "))
	case "users":
		return app.listUsers(ctx)
	case "add-user":
		return app.addUser(ctx)
	case "edit-user":
		if len(args) != 1 {
			return errors.New("usage: edit-user <id>")
		}
		return app.editUser(ctx, args[0])
	case "delete-user":
		if len(args) != 1 {
			return errors.New("usage: delete-user <id>")
		}
		return app.deleteUser(ctx, args[0])
	default:
		fmt.Fprintf(app.out, "unknown command %q, type 'help'\n", cmd)
	}
	return nil
}

func (app *application) printHelp() {
	fmt.Fprintln(app.out, "Commands:")
	fmt.Fprintln(app.out, "  posts [term]        list published posts, optionally filtered")
	fmt.Fprintln(app.out, "  sort <order>        listing order: newest, oldest, title, author")
	fmt.Fprintln(app.out, "  read <id>           show one post")
	fmt.Fprintln(app.out, "  login | register    authenticate")
	fmt.Fprintln(app.out, "  logout | whoami     session")
	if app.session.IsAuthenticated() {
		fmt.Fprintln(app.out, "  mine                your posts, drafts included")
		fmt.Fprintln(app.out, "  new                 write a post")
		fmt.Fprintln(app.out, "  edit <id>           edit a post you own")
		fmt.Fprintln(app.out, "  publish <id>        make a post visible")
		fmt.Fprintln(app.out, "  unpublish <id>      hide a post")
		fmt.Fprintln(app.out, "  delete <id>         delete a post you own")
	}
	if app.session.IsAdmin() {
		fmt.Fprintln(app.out, "  all [term]          every post, drafts included (admin)")
		fmt.Fprintln(app.out, "  users               list accounts (admin)")
		fmt.Fprintln(app.out, "  add-user            create an account (admin)")
		fmt.Fprintln(app.out, "  edit-user <id>      change name, email, or role (admin)")
		fmt.Fprintln(app.out, "  delete-user <id>    remove an account (admin)")
	}
	fmt.Fprintln(app.out, "  exit")
}

func (app *application) listPublished(ctx context.Context, term string) error {
	posts, err := app.postService.GetPublished(ctx)
	if err != nil {
		return err
	}

	matched := postservice.Search(posts, term)
	matched = postservice.SortPosts(matched, app.sortBy)

	if term != "" && len(matched) != len(posts) {
		fmt.Fprintf(app.out, "Showing %d of %d posts\n", len(matched), len(posts))
	}
	app.printPosts(matched)
	return nil
}

func (app *application) setSort(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: sort newest|oldest|title|author")
	}

	switch order := postservice.SortOrder(args[0]); order {
	case postservice.SortNewest, postservice.SortOldest, postservice.SortTitle, postservice.SortAuthor:
		app.sortBy = order
		return nil
	default:
		return fmt.Errorf("unknown sort order %q", args[0])
	}
}

func (app *application) readPost(ctx context.Context, id string) error {
	post, err := app.postService.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if post == nil {
		return fmt.Errorf("no post with id %q", id)
	}

	fmt.Fprintf(app.out, "# %s\nby %s on %s\n\n%s\n",
		post.Title, post.AuthorName, post.CreatedAt.Format("Jan 2, 2006"), post.Content)
	return nil
}

func (app *application) login(ctx context.Context) error {
	email, err := app.readLine("Email: ")
	if err != nil {
		return err
	}
	password, err := app.readSecret("Password: ")
	if err != nil {
		return err
	}

	v := common.NewValidator()
	validateEmail(v, email)
	validatePassword(v, password)
	if !v.Valid() {
		return v.ValidationError()
	}

	account, err := app.session.Login(ctx, email, password)
	if err != nil {
		return err
	}

	fmt.Fprintf(app.out, "Welcome back, %s\n", account.Name)
	return nil
}

func (app *application) register(ctx context.Context) error {
	name, err := app.readLine("Name: ")
	if err != nil {
		return err
	}
	email, err := app.readLine("Email: ")
	if err != nil {
		return err
	}
	password, err := app.readSecret("Password: ")
	if err != nil {
		return err
	}

	v := common.NewValidator()
	validateName(v, name)
	validateEmail(v, email)
	validatePassword(v, password)
	if !v.Valid() {
		return v.ValidationError()
	}

	account, err := app.session.Register(ctx, email, password, name)
	if err != nil {
		return err
	}

	fmt.Fprintf(app.out, "Welcome, %s\n", account.Name)
	return nil
}

func (app *application) logout(ctx context.Context) error {
	if err := app.session.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(app.out, "Logged out")
	return nil
}

func (app *application) whoami() {
	current := app.session.Current()
	if current == nil {
		fmt.Fprintln(app.out, "Not logged in")
		return
	}
	fmt.Fprintf(app.out, "%s <%s> (%s)\n", current.Name, current.Email, current.Role)
}

func (app *application) listMine(ctx context.Context) error {
	current := app.session.Current()
	if current == nil {
		return errors.New("login first")
	}

	posts, err := app.postService.GetByAuthor(ctx, current.ID)
	if err != nil {
		return err
	}

	app.printPosts(posts)
	return nil
}

func (app *application) newPost(ctx context.Context) error {
	current := app.session.Current()
	if current == nil {
		return errors.New("login first")
	}

	title, err := app.readLine("Title: ")
	if err != nil {
		return err
	}
	excerpt, err := app.readLine("Excerpt: ")
	if err != nil {
		return err
	}
	content, err := app.readMultiline("Content (finish with an empty line):")
	if err != nil {
		return err
	}
	publish, err := app.readYesNo("Publish now? [y/N] ")
	if err != nil {
		return err
	}

	v := common.NewValidator()
	validateTitle(v, title)
	validateContent(v, content)
	if !v.Valid() {
		return v.ValidationError()
	}

	post, err := app.postService.Create(ctx, &postservice.CreatePostRequest{
		Title:   title,
		Content: content,
		Excerpt: excerpt,
		// authorName is snapshotted here; renaming the account later does not
		// rewrite existing posts
		AuthorID:   current.ID,
		AuthorName: current.Name,
		Published:  publish,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(app.out, "Created %s\n", post.ID)
	return nil
}

func (app *application) editPost(ctx context.Context, id string) error {
	post, err := app.requireOwned(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintf(app.out, "Editing %q — leave a field blank to keep it\n", post.Title)

	title, err := app.readLine("Title: ")
	if err != nil {
		return err
	}
	excerpt, err := app.readLine("Excerpt: ")
	if err != nil {
		return err
	}
	content, err := app.readMultiline("Content (finish with an empty line, leave empty to keep):")
	if err != nil {
		return err
	}

	req := &postservice.UpdatePostRequest{}
	if title != "" {
		req.Title = &title
	}
	if excerpt != "" {
		req.Excerpt = &excerpt
	}
	if content != "" {
		req.Content = &content
	}

	updated, err := app.postService.Update(ctx, id, req)
	if err != nil {
		return err
	}
	if updated == nil {
		return fmt.Errorf("no post with id %q", id)
	}

	fmt.Fprintf(app.out, "Updated %s\n", updated.ID)
	return nil
}

func (app *application) setPublished(ctx context.Context, id string, published bool) error {
	if _, err := app.requireOwned(ctx, id); err != nil {
		return err
	}

	updated, err := app.postService.Update(ctx, id, &postservice.UpdatePostRequest{Published: &published})
	if err != nil {
		return err
	}
	if updated == nil {
		return fmt.Errorf("no post with id %q", id)
	}

	if published {
		fmt.Fprintf(app.out, "Published %s\n", updated.ID)
	} else {
		fmt.Fprintf(app.out, "Unpublished %s\n", updated.ID)
	}
	return nil
}

func (app *application) deletePost(ctx context.Context, id string) error {
	if _, err := app.requireOwned(ctx, id); err != nil {
		return err
	}

	deleted, err := app.postService.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("no post with id %q", id)
	}

	fmt.Fprintln(app.out, "Deleted")
	return nil
}

// requireOwned is the presentation-side trust boundary: the stores accept any
// mutation, so ownership and admin checks happen here, before the call.
func (app *application) requireOwned(ctx context.Context, id string) (*postservice.Post, error) {
	current := app.session.Current()
	if current == nil {
		return nil, errors.New("login first")
	}

	post, err := app.postService.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, fmt.Errorf("no post with id %q", id)
	}

	if post.AuthorID != current.ID && !app.session.IsAdmin() {
		return nil, errors.New("you can only change your own posts")
	}

	return post, nil
}

func (app *application) listAll(ctx context.Context, term string) error {
	if !app.session.IsAdmin() {
		return errors.New("admin only")
	}

	posts, err := app.postService.GetAll(ctx)
	if err != nil {
		return err
	}

	matched := postservice.Search(posts, term)
	app.printPosts(matched)
	return nil
}

func (app *application) listUsers(ctx context.Context) error {
	if !app.session.IsAdmin() {
		return errors.New("admin only")
	}

	accounts, err := app.userService.GetAccounts(ctx)
	if err != nil {
		return err
	}

	for _, a := range accounts {
		fmt.Fprintf(app.out, "%s  %s <%s>  %s  joined %s\n",
			a.ID, a.Name, a.Email, a.Role, a.CreatedAt.Format("Jan 2, 2006"))
	}
	return nil
}

func (app *application) addUser(ctx context.Context) error {
	if !app.session.IsAdmin() {
		return errors.New("admin only")
	}

	name, err := app.readLine("Name: ")
	if err != nil {
		return err
	}
	email, err := app.readLine("Email: ")
	if err != nil {
		return err
	}
	password, err := app.readSecret("Password: ")
	if err != nil {
		return err
	}
	role, err := app.readRole("Role [user/admin] (default user): ")
	if err != nil {
		return err
	}

	v := common.NewValidator()
	validateName(v, name)
	validateEmail(v, email)
	validatePassword(v, password)
	if !v.Valid() {
		return v.ValidationError()
	}

	account, err := app.userService.CreateAccount(ctx, &userservice.CreateAccountRequest{
		Email:    email,
		Password: password,
		Name:     name,
		Role:     role,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(app.out, "Created account %s (%s)\n", account.ID, account.Role)
	return nil
}

func (app *application) editUser(ctx context.Context, id string) error {
	if !app.session.IsAdmin() {
		return errors.New("admin only")
	}

	fmt.Fprintln(app.out, "Leave a field blank to keep it")

	name, err := app.readLine("Name: ")
	if err != nil {
		return err
	}
	email, err := app.readLine("Email: ")
	if err != nil {
		return err
	}
	roleAnswer, err := app.readLine("Role [user/admin]: ")
	if err != nil {
		return err
	}

	req := &userservice.UpdateAccountRequest{}
	if name != "" {
		req.Name = &name
	}
	if email != "" {
		v := common.NewValidator()
		validateEmail(v, email)
		if !v.Valid() {
			return v.ValidationError()
		}
		req.Email = &email
	}
	if roleAnswer != "" {
		role, err := parseRole(roleAnswer)
		if err != nil {
			return err
		}
		req.Role = &role
	}

	updated, err := app.userService.UpdateAccount(ctx, id, req)
	if err != nil {
		return err
	}
	if updated == nil {
		return fmt.Errorf("no account with id %q", id)
	}

	fmt.Fprintf(app.out, "Updated account %s\n", updated.ID)
	return nil
}

func (app *application) deleteUser(ctx context.Context, id string) error {
	if !app.session.IsAdmin() {
		return errors.New("admin only")
	}

	deleted, err := app.userService.DeleteAccount(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("no account with id %q", id)
	}

	// the account's posts stay behind with their authorName snapshot
	fmt.Fprintln(app.out, "Deleted account")
	return nil
}

func (app *application) readRole(prompt string) (userservice.Role, error) {
	answer, err := app.readLine(prompt)
	if err != nil {
		return "", err
	}
	if answer == "" {
		return userservice.RoleUser, nil
	}
	return parseRole(answer)
}

func parseRole(answer string) (userservice.Role, error) {
	switch role := userservice.Role(strings.ToLower(answer)); role {
	case userservice.RoleUser, userservice.RoleAdmin:
		return role, nil
	default:
		return "", fmt.Errorf("unknown role %q", answer)
	}
}

func (app *application) printPosts(posts []postservice.Post) {
	if len(posts) == 0 {
		fmt.Fprintln(app.out, "No posts")
		return
	}

	for _, p := range posts {
		marker := " "
		if !p.Published {
			marker = "d" // draft
		}
		fmt.Fprintf(app.out, "%s %s  %s — %s (%s)\n",
			marker, p.ID, p.Title, p.AuthorName, p.CreatedAt.Format("Jan 2, 2006"))
		if p.Excerpt != "" {
			fmt.Fprintf(app.out, "    %s\n", p.Excerpt)
		}
	}
}

func (app *application) readLine(prompt string) (string, error) {
	fmt.Fprint(app.out, prompt)
	if !app.in.Scan() {
		if err := app.in.Err(); err != nil {
			return "", err
		}
		return "", errors.New("input closed")
	}
	return strings.TrimSpace(app.in.Text()), nil
}

// readSecret reads without echo when stdin is a terminal and falls back to a
// plain line read otherwise, so piped and scripted input keeps working.
func (app *application) readSecret(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return app.readLine(prompt)
	}

	fmt.Fprint(app.out, prompt)
	password, err := readPassword(fd)
	fmt.Fprintln(app.out)
	if err != nil {
		return "", err
	}
	return string(password), nil
}

// readMultiline collects lines until the first empty one.
func (app *application) readMultiline(prompt string) (string, error) {
	fmt.Fprintln(app.out, prompt)

	var lines []string
	for app.in.Scan() {
		line := app.in.Text()
		if strings.TrimSpace(line) == "" {
			break
		}
		lines = append(lines, line)
	}
	if err := app.in.Err(); err != nil {
		return "", err
	}

	return strings.Join(lines, "\n"), nil
}

func (app *application) readYesNo(prompt string) (bool, error) {
	answer, err := app.readLine(prompt)
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes", nil
}
