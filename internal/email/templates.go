package email

const reviewRequestTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body {
            font-family: Arial, sans-serif;
            line-height: 1.6;
            color: #333;
            max-width: 600px;
            margin: 0 auto;
            padding: 20px;
        }
        .header {
            background-color: #2563eb;
            color: white;
            padding: 20px;
            text-align: center;
            border-radius: 5px 5px 0 0;
        }
        .content {
            background-color: #f9f9f9;
            padding: 30px;
            border-radius: 0 0 5px 5px;
        }
        .button {
            display: inline-block;
            background-color: #2563eb;
            color: white !important;
            padding: 12px 30px;
            text-decoration: none;
            border-radius: 5px;
            margin: 10px 10px 10px 0;
        }
        .footer {
            margin-top: 30px;
            font-size: 12px;
            color: #666;
            text-align: center;
        }
    </style>
</head>
<body>
    <div class="header">
        <h1>{{.BusinessName}}</h1>
    </div>
    <div class="content">
        <h2>Hi {{.ContactName}},</h2>
        <p>Thank you for choosing {{.BusinessName}}! We hope you had a great experience.</p>
        <p>We'd really appreciate your feedback. Your review helps us improve our service and helps other customers make informed decisions.</p>

        {{range .PlatformLinks}}
        <a href="{{.URL}}" class="button" style="color: white !important;">Review us on {{.Name}}</a>
        {{end}}

        <p style="margin-top: 30px;">It only takes a minute, and it means a lot to us!</p>
        <p>Thank you for your time!<br>Best regards,<br>The {{.BusinessName}} Team</p>
    </div>
    <div class="footer">
        <p>Sent from ReviewCraft - Your Review Management Platform</p>
    </div>
</body>
</html>
`

const passwordResetTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body {
            font-family: Arial, sans-serif;
            line-height: 1.6;
            color: #333;
            max-width: 600px;
            margin: 0 auto;
            padding: 20px;
        }
        .header {
            background-color: #2563eb;
            color: white;
            padding: 20px;
            text-align: center;
            border-radius: 5px 5px 0 0;
        }
        .content {
            background-color: #f9f9f9;
            padding: 30px;
            border-radius: 0 0 5px 5px;
        }
        .button {
            display: inline-block;
            background-color: #2563eb;
            color: white !important;
            padding: 12px 30px;
            text-decoration: none;
            border-radius: 5px;
            margin: 20px 0;
        }
        .footer {
            margin-top: 30px;
            font-size: 12px;
            color: #666;
            text-align: center;
        }
    </style>
</head>
<body>
    <div class="header">
        <h1>Password Reset Request</h1>
    </div>
    <div class="content">
        <h2>Reset your password</h2>
        <p>You requested to reset your password. Click the button below to create a new password.</p>

        <a href="{{.ResetLink}}" class="button" style="color: white !important;">Reset Password</a>

        <p>Or copy and paste this link into your browser:</p>
        <p style="word-break: break-all; color: #2563eb;">{{.ResetLink}}</p>

        <p style="margin-top: 30px;">If you didn't request a password reset, you can safely ignore this email. Your password will remain unchanged.</p>
    </div>
    <div class="footer">
        <p>This link will expire in 1 hour.</p>
        <p>Sent from ReviewCraft - Your Review Management Platform</p>
    </div>
</body>
</html>
`

const testEmailBody = `
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
    <h2 style="color: #2563eb;">Test Email from ReviewCraft</h2>
    <p>This is a test email to verify that your email service is working correctly.</p>
    <p>If you received this email, your email configuration is working properly!</p>
    <hr>
    <p style="color: #6b7280; font-size: 12px;">
        Sent from ReviewCraft - Your Review Management Platform
    </p>
</div>
`
