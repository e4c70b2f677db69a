package postservice

import (
	"context"
	"time"
)

// EnsureSeeded writes the demo posts if the substrate holds no post collection
// yet, so a fresh installation has content to browse. It is idempotent: an
// existing collection, even an empty one, is left alone. The composition root
// calls this once at startup.
func (s *PostService) EnsureSeeded(ctx context.Context) error {
	found, err := s.m.exists(ctx)
	if err != nil {
		return err
	}
	if found {
		return nil
	}

	now := time.Now().UTC()

	posts := make([]Post, len(demoPosts))
	for i, d := range demoPosts {
		createdAt := now.Add(-d.age)
		posts[i] = Post{
			ID:         d.id,
			Title:      d.title,
			Content:    d.content,
			Excerpt:    d.excerpt,
			AuthorID:   d.authorID,
			AuthorName: d.authorName,
			CreatedAt:  createdAt,
			UpdatedAt:  createdAt,
			Published:  true,
		}
	}

	return s.m.save(ctx, posts)
}

// demoPosts link to the demo accounts seeded by the user service (ids "1"
// and "2").
var demoPosts = []struct {
	id         string
	title      string
	content    string
	excerpt    string
	authorID   string
	authorName string
	age        time.Duration
}{
	{
		id:    "1",
		title: "Welcome to Our Blog Platform",
		content: `# Welcome to Our Blog Platform

This is a demonstration of our blog platform. Here are some of the features you can explore:

## Features

- **User Authentication**: Secure login and registration system
- **Role-based Access**: Different permissions for users and administrators
- **Rich Content**: Write and edit blog posts with markdown support

## Getting Started

To get started, you can:

1. **Login** with demo credentials:
   - Admin: admin@blog.com / admin123
   - User: user@blog.com / user123

2. **Register** your own account

3. **Create** your first blog post

4. **Explore** the admin dashboard if you're an administrator

We hope you enjoy using our platform!`,
		excerpt:    "Welcome to our modern blog platform. Discover features like user authentication, role-based access, and rich content creation.",
		authorID:   "1",
		authorName: "Admin User",
		age:        48 * time.Hour,
	},
	{
		id:    "2",
		title: "The Future of Web Development",
		content: `# The Future of Web Development

Web development continues to evolve at a rapid pace. Here are some trends to watch:

## Modern Frontend Technologies

- **React & TypeScript**: Type-safe component development
- **Tailwind CSS**: Utility-first styling approach
- **Server Components**: Better performance and SEO

## Development Practices

- **Component-driven Development**: Reusable, maintainable code
- **Progressive Enhancement**: Starting with a solid foundation
- **Accessibility First**: Building for everyone

The future looks bright for web developers who embrace these modern approaches!`,
		excerpt:    "Exploring the latest trends and technologies shaping the future of web development.",
		authorID:   "2",
		authorName: "John Doe",
		age:        24 * time.Hour,
	},
	{
		id:    "3",
		title: "Building Better User Experiences",
		content: `# Building Better User Experiences

User experience is at the heart of every successful application. Here's how we approach UX design:

## Core Principles

1. **Simplicity**: Keep interfaces clean and intuitive
2. **Consistency**: Maintain design patterns throughout
3. **Accessibility**: Ensure everyone can use your app
4. **Performance**: Fast loading times and smooth interactions

## Design Process

Our design process involves:

- User research and persona development
- Wireframing and prototyping
- Usability testing and iteration
- Implementation with attention to detail

Great UX doesn't happen by accident - it's the result of careful planning and execution.`,
		excerpt:    "Learn about the principles and processes behind creating exceptional user experiences.",
		authorID:   "1",
		authorName: "Admin User",
		age:        12 * time.Hour,
	},
}
